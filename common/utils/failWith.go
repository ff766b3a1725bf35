package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
)

var version = "0.1.0"

func GetVersion() string {
	return version
}

// FailWith prints the error chain of err and exits.
func FailWith(err error) {
	command := strings.Join(os.Args, " ")

	fmt.Println("")
	fmt.Println(chalk.Red.Color("❌  An error occurred."))
	fmt.Println("")
	fmt.Println("  command: " + command)
	fmt.Println("  version: " + GetVersion())
	fmt.Println("")
	fmt.Print(formatChain(err))
	fmt.Println("")

	os.Exit(1)
}

func WarnWith(err error) {
	fmt.Println("")
	fmt.Println(chalk.Yellow.Color("⚠️  Warning"))
	fmt.Println("")
	fmt.Print(formatChain(err))
	fmt.Println("")
}

func formatChain(err error) string {
	msg := "└ " + err.Error() + "\n"

	if cause := errors.Cause(err); cause != err {
		msg += "  └ cause: " + cause.Error() + "\n"
	}

	return msg
}
