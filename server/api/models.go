package api

import "github.com/dekarrin/darkstar/server/session"

// InfoModel is the response to GET /info.
type InfoModel struct {
	Version struct {
		Server   string `json:"server"`
		DarkStar string `json:"darkstar"`
	} `json:"version"`
	Sessions int `json:"sessions"`
}

// SessionModel describes a running game. Objects lists what can be seen in
// the current room; clients re-read it after commands that change the room.
type SessionModel struct {
	ID      string   `json:"id"`
	Room    string   `json:"room"`
	Objects []string `json:"objects"`
	Pending string   `json:"pending"`
	Time    string   `json:"time"`
	Ended   bool     `json:"ended"`
}

func sessionModel(info session.Info) SessionModel {
	return SessionModel{
		ID:      info.ID.String(),
		Room:    info.Room,
		Objects: info.Objects,
		Pending: info.Pending.String(),
		Time:    info.Time,
		Ended:   info.Ended,
	}
}

// NewSessionModel is the response to creating a session.
type NewSessionModel struct {
	ID   string `json:"id"`
	Room string `json:"room"`
	Text string `json:"text"`
}

// CommandRequest is the body of a command sent to a session.
type CommandRequest struct {
	Input string `json:"input"`
}

// CommandModel is the response to a command.
type CommandModel struct {
	Output  string          `json:"output"`
	Events  []session.Event `json:"events"`
	Pending string          `json:"pending"`
}
