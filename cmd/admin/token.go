package main

import (
	"fmt"

	"tourneypoker-server/internal/config"
	"tourneypoker-server/internal/jwt"
	"tourneypoker-server/internal/util"
)

// TokenCmd signs a token
type TokenCmd struct {
	Player string `arg:"" optional:"" help:"Player id, prompted for when missing"`
}

// Run signs a token for the player
func (t *TokenCmd) Run() error {
	playerID := t.Player
	if playerID == "" {
		answer, err := getInput("Player ID (blank for a random one)")
		if err != nil {
			return err
		}

		playerID = answer
	}

	if playerID == "" {
		playerID = util.GetRandomName()
	}

	jwt.LoadKeys()
	signed, err := jwt.Sign(playerID)
	if err != nil {
		return err
	}

	if config.Instance().IsAdmin(playerID) {
		fmt.Printf("Player %s is an admin\n", playerID)
	}

	fmt.Println(signed)
	return nil
}
