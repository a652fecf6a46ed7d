package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"talentscout/pkg/config"
)

// secretNames are the credentials offered during interactive setup.
var secretNames = []string{
	config.EnvOpenAIAPIKey,
	config.EnvAnthropicAPIKey,
	config.EnvGeminiAPIKey,
}

// initSecretsInteractive prompts for API keys and writes the encrypted
// secrets file.
func initSecretsInteractive(workDir string) error {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return fmt.Errorf("-init-secrets requires an interactive terminal")
	}

	reader := bufio.NewReader(os.Stdin)
	secrets := make(map[string]string)

	fmt.Println("Enter API keys to store (leave blank to skip).")
	for _, name := range secretNames {
		fmt.Printf("%s: ", name)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if value := strings.TrimSpace(line); value != "" {
			secrets[name] = value
		}
	}

	if len(secrets) == 0 {
		return fmt.Errorf("no credentials entered, nothing to save")
	}

	password, err := promptForNewPassword()
	if err != nil {
		return err
	}

	if err := config.EncryptSecretsFile(workDir, password, secrets); err != nil {
		return fmt.Errorf("failed to encrypt secrets: %w", err)
	}

	fmt.Printf("Credentials saved to %s/secrets.json.enc (file permissions: 0600)\n", config.ProjectConfigDir)
	return nil
}

// unlockSecrets decrypts the secrets file into memory when one exists and a
// terminal is available to ask for the password. Without a terminal the
// environment-variable fallback still applies.
func unlockSecrets(workDir string) error {
	if !config.SecretsFileExists(workDir) {
		return nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil
	}

	fmt.Print("Password for encrypted credentials: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	defer zeroBytes(password)

	secrets, err := config.DecryptSecretsFile(workDir, string(password))
	if err != nil {
		return err
	}
	config.SetDecryptedSecrets(secrets)
	return nil
}

// promptForNewPassword prompts for a password with confirmation.
func promptForNewPassword() (string, error) {
	const maxAttempts = 3
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Print("Enter a password for the secrets file: ")
		password1, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		password2, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		if !bytes.Equal(password1, password2) {
			zeroBytes(password1)
			zeroBytes(password2)
			if attempt < maxAttempts {
				fmt.Println("Passwords do not match. Please try again.")
				continue
			}
			return "", fmt.Errorf("passwords do not match after %d attempts", maxAttempts)
		}

		password := string(password1)
		zeroBytes(password1)
		zeroBytes(password2)

		if password == "" {
			return "", fmt.Errorf("password must not be empty")
		}
		return password, nil
	}
	return "", fmt.Errorf("password entry failed")
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
