// internals/features/gigs/online_sessions/service/room_provisioner.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"quest4knowledge_backend/internals/apperr"
	"quest4knowledge_backend/internals/configs"
)

/* =========================================================
   Room provisioning.

   The meeting works by code + pin with or without an
   external room: provisioning is best-effort and every
   failure surfaces as an ExternalCollaborator error the
   scheduler logs and moves past.
========================================================= */

type RoomProvisioner interface {
	CreateRoom(ctx context.Context, friendlyURL string) (id string, url string, err error)
	DeleteRoom(ctx context.Context, id string) error
}

// NewRoomProvisioner picks Digital Samba when credentials are configured,
// otherwise the no-op provisioner.
func NewRoomProvisioner(settings configs.Settings) RoomProvisioner {
	if settings.DigitalSambaTeamID != "" && settings.DigitalSambaDeveloperKey != "" {
		return NewDigitalSambaProvisioner(settings)
	}
	log.Println("⚠️ Digital Samba credentials not set, meetings will run without external rooms")
	return NoopProvisioner{}
}

/* =========================
   Digital Samba
========================= */

type DigitalSambaProvisioner struct {
	baseURL string
	teamID  string
	devKey  string
	client  *http.Client
}

func NewDigitalSambaProvisioner(settings configs.Settings) *DigitalSambaProvisioner {
	return &DigitalSambaProvisioner{
		baseURL: settings.DigitalSambaAPIURL,
		teamID:  settings.DigitalSambaTeamID,
		devKey:  settings.DigitalSambaDeveloperKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *DigitalSambaProvisioner) CreateRoom(ctx context.Context, friendlyURL string) (string, string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"friendly_url":  friendlyURL,
		"privacy":       "private",
		"externalId":    friendlyURL,
		"language":      "en",
		"join_screen":   true,
		"chat_enabled":  true,
		"screenshare":   true,
		"max_occupancy": 5,
	})
	if err != nil {
		return "", "", apperr.ExternalCollaborator("digital samba: encode room request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/rooms", bytes.NewReader(payload))
	if err != nil {
		return "", "", apperr.ExternalCollaborator("digital samba: build room request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.teamID, p.devKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", "", apperr.ExternalCollaborator("digital samba: create room", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", apperr.ExternalCollaborator("digital samba: create room",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var out struct {
		ID          string `json:"id"`
		RoomURL     string `json:"room_url"`
		FriendlyURL string `json:"friendly_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", "", apperr.ExternalCollaborator("digital samba: decode room response", err)
	}
	return out.ID, out.RoomURL, nil
}

func (p *DigitalSambaProvisioner) DeleteRoom(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.baseURL+"/rooms/"+id, nil)
	if err != nil {
		return apperr.ExternalCollaborator("digital samba: build delete request", err)
	}
	req.SetBasicAuth(p.teamID, p.devKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return apperr.ExternalCollaborator("digital samba: delete room", err)
	}
	defer resp.Body.Close()
	// A room already gone counts as deleted.
	if resp.StatusCode < 200 || (resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound) {
		return apperr.ExternalCollaborator("digital samba: delete room",
			fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}

/* =========================
   No-op fallback
========================= */

type NoopProvisioner struct{}

func (NoopProvisioner) CreateRoom(ctx context.Context, friendlyURL string) (string, string, error) {
	return "", "", nil
}

func (NoopProvisioner) DeleteRoom(ctx context.Context, id string) error { return nil }
