// Package mockdata embeds the default game data used in mock mode, when the
// hosted document store is disabled or unreachable.
package mockdata

import (
	_ "embed"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

//go:embed gamedata.yaml
var raw []byte

type payload struct {
	Tasks []string `yaml:"tasks"`
	Users []string `yaml:"users"`
}

// GameData parses the embedded default task pool and roster.
func GameData() (*bingodto.GameDataDocument, error) {
	var p payload
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse embedded game data: %w", err)
	}
	return &bingodto.GameDataDocument{Tasks: p.Tasks, Users: p.Users}, nil
}
