package services

import (
	"testing"
)

func TestEmailConfigResponse_Defaults(t *testing.T) {
	cfg := &EmailConfigResponse{
		Enabled:     false,
		Host:        "",
		Port:        587,
		Username:    "",
		From:        "",
		UseTLS:      false,
		PasswordSet: false,
	}

	if cfg.Enabled {
		t.Error("Enabled should be false by default")
	}
	if cfg.Host != "" {
		t.Errorf("Host should be empty, got %s", cfg.Host)
	}
	if cfg.Port != 587 {
		t.Errorf("default port should be 587, got %d", cfg.Port)
	}
	if cfg.UseTLS {
		t.Error("UseTLS should be false by default")
	}
	if cfg.PasswordSet {
		t.Error("PasswordSet should be false by default")
	}
}

func TestUpdateEmailConfigRequest_PartialUpdate(t *testing.T) {
	enabled := true
	host := "smtp.example.com"
	port := 465

	req := &UpdateEmailConfigRequest{
		Enabled: &enabled,
		Host:    &host,
		Port:    &port,
	}

	if req.Enabled == nil || *req.Enabled != true {
		t.Error("Enabled should be set to true")
	}
	if req.Host == nil || *req.Host != "smtp.example.com" {
		t.Error("Host should be set")
	}
	if req.Port == nil || *req.Port != 465 {
		t.Error("Port should be set to 465")
	}
	if req.Username != nil {
		t.Error("Username should be nil (not set)")
	}
	if req.Password != nil {
		t.Error("Password should be nil (not set)")
	}
}
