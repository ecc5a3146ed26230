package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// CLI is the admin command line
type CLI struct {
	Token   TokenCmd   `cmd:"" help:"Sign a bearer token for a player"`
	Keygen  KeygenCmd  `cmd:"" help:"Generate the RSA key pair used to sign tokens"`
	Migrate MigrateCmd `cmd:"" help:"Run the database migrations"`
	Config  ConfigCmd  `cmd:"" help:"Print the default configuration"`
	List    ListCmd    `cmd:"" help:"List the stored tournaments"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("admin"),
		kong.Description("Administer the tournament server"),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
