package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/services"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/utils"
)

type loginConfig struct {
	APIURL string `env:"API_URL"`
	Email  string `env:"ADMIN_EMAIL"`
}

func main() {
	envFile := flag.String("env", utils.DefaultEnvFile, "path to the .env configuration file")
	save := flag.Bool("save", false, "write API_TOKEN and REFRESH_TOKEN into the env file")
	flag.Parse()

	if err := run(*envFile, *save); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(envFile string, save bool) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	var cfg loginConfig
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label, def string) string {
		if def != "" {
			fmt.Printf("%s [%s]: ", label, def)
		} else {
			fmt.Printf("%s: ", label)
		}
		text, _ := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			return def
		}
		return text
	}

	apiURL := strings.TrimRight(prompt("API URL", cfg.APIURL), "/")
	email := prompt("Admin email", cfg.Email)
	password := prompt("Admin password", "")
	if apiURL == "" || email == "" || password == "" {
		return errors.New("API URL, email and password are required")
	}

	client := services.NewAPIClient(model.Config{APIURL: apiURL}, "", nil, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pair, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("API_TOKEN=" + pair.AccessToken)
	fmt.Println("REFRESH_TOKEN=" + pair.RefreshToken)

	if !save {
		fmt.Println("\nAdd these lines to", envFile, "or run again with -save.")
		return nil
	}
	values := map[string]string{"API_TOKEN": pair.AccessToken}
	if pair.RefreshToken != "" {
		values["REFRESH_TOKEN"] = pair.RefreshToken
	}
	if err := utils.WriteEnvValues(envFile, values); err != nil {
		return err
	}
	fmt.Println("\nTokens saved to", envFile)
	return nil
}
