package core

import (
	"fmt"
	"log"
	"syscall"

	"golang.org/x/term"
)

// ReadSecretInput prompts the user for a value without echoing input to the terminal.
func ReadSecretInput(prompt string) string {
	fmt.Print(prompt + ": ")
	byteInput, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("🔒")
	return string(byteInput)
}
