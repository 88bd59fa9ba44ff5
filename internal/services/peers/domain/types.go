// Package domain holds the peer registry types and ports
package domain

import "time"

// Peer is a registered pairing partner
type Peer struct {
	ID          string    `json:"id" example:"0b6f1f8e-5c1e-4a43-9a43-7a3e8f1f0c55"`
	Name        string    `json:"name" example:"Kukai Wallet"`
	DisplayName string    `json:"display_name" example:"Kukai Wallet"`
	PublicKey   string    `json:"public_key" example:"3b92229274683b311cf8b567a6a4f4a2d4a4b7f5a2b1c0d9e8f7a6b5c4d3e2f1"`
	RelayServer string    `json:"relay_server" example:"beacon-node-1.sky.papers.tech"`
	Version     string    `json:"version,omitempty" example:"3"`
	SenderID    string    `json:"sender_id,omitempty"`
	AppURL      string    `json:"app_url,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// Status describes the registry's client connectivity
type Status struct {
	Connected   bool       `json:"connected"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
	Peers       int        `json:"peers"`
	MaxPeers    int        `json:"max_peers,omitempty"`
}
