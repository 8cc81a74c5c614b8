package server

import (
	"crypto/rand"
	"math/big"
)

const lobbyCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const lobbyCodeLen = 6

func generateLobbyID() (string, error) {
	b := make([]byte, lobbyCodeLen)
	max := big.NewInt(int64(len(lobbyCodeChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = lobbyCodeChars[idx.Int64()]
	}
	return string(b), nil
}

func generateSeed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return 1
	}
	return n.Int64()
}
