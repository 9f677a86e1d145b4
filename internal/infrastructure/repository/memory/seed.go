package memory

import (
	"time"

	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
)

var seedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedPlayers is the demo roster loaded by the memory storage driver.
func SeedPlayers() []player.Player {
	items := []player.Player{
		{ID: 1, Name: "Marc-André ter Stegen", Number: 1, Position: "POR", TeamID: 1},
		{ID: 2, Name: "Ronald Araújo", Number: 4, Position: "DEF", TeamID: 1},
		{ID: 3, Name: "Pedri González", Number: 8, Position: "MED", TeamID: 1},
		{ID: 4, Name: "Robert Lewandowski", Number: 9, Position: "DEL", TeamID: 1},
		{ID: 5, Name: "Thibaut Courtois", Number: 1, Position: "POR", TeamID: 2},
		{ID: 6, Name: "Antonio Rüdiger", Number: 22, Position: "DEF", TeamID: 2},
		{ID: 7, Name: "Jude Bellingham", Number: 5, Position: "MED", TeamID: 2},
		{ID: 8, Name: "Kylian Mbappé", Number: 9, Position: "DEL", TeamID: 2},
		{ID: 9, Name: "Jan Oblak", Number: 13, Position: "POR", TeamID: 3},
		{ID: 10, Name: "Antoine Griezmann", Number: 7, Position: "DEL", TeamID: 3},
	}
	for i := range items {
		items[i].CreatedAt = seedTime
		items[i].UpdatedAt = seedTime
	}
	return items
}
