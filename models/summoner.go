package models

import (
	"time"
)

// Summoner represents a player identity record collected from the Riot API
type Summoner struct {
	PUUID        string    `db:"puuid"`
	SummonerID   string    `db:"summoner_id"`
	AccountID    string    `db:"account_id"`
	SummonerName string    `db:"summoner_name"`
	Region       string    `db:"region"`
	Tier         string    `db:"tier"`
	Division     string    `db:"division"`
	LeaguePoints int       `db:"league_points"`
	Wins         int       `db:"wins"`
	Losses       int       `db:"losses"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
