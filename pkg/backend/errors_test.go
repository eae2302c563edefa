package backend

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

func TestInitErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &InitError{Endpoint: "http://localhost:54235/razer/chromasdk", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("InitError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestInitErrorReasonOnly(t *testing.T) {
	err := &InitError{Reason: "handshake returned no session"}
	if !strings.Contains(err.Error(), "no session") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCallErrorKinds(t *testing.T) {
	// Transport-level failure and logical failure must stay distinguishable
	// from each other and from the capability sentinels.
	transport := &CallError{Endpoint: "/keyboard", Op: OpCreateEffect, HTTPStatus: 500}
	logical := &CreateError{Endpoint: "/keyboard", Result: 1, Reason: "result flag set"}

	var ce *CallError
	if !errors.As(error(transport), &ce) {
		t.Error("expected errors.As to match CallError")
	}
	if errors.As(error(logical), &ce) {
		t.Error("CreateError must not match CallError")
	}
	if errors.Is(error(transport), ErrUnsupportedOperation) {
		t.Error("CallError must not match ErrUnsupportedOperation")
	}

	if !strings.Contains(transport.Error(), "500") {
		t.Errorf("CallError should carry the status: %q", transport.Error())
	}
}

func TestCallErrorWrapped(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("create: %w", &CallError{Endpoint: "/mouse", Op: OpCreateEffect, Err: cause})

	var ce *CallError
	if !errors.As(err, &ce) {
		t.Fatal("expected wrapped CallError to be found")
	}
	if ce.Endpoint != "/mouse" {
		t.Errorf("Endpoint = %q", ce.Endpoint)
	}
	if !errors.Is(err, cause) {
		t.Error("expected chain to reach the transport cause")
	}
}

func TestAppInfoValidate(t *testing.T) {
	valid := AppInfo{
		Title:       "Example App",
		Description: "Drives some lights",
		Author:      Author{Name: "Dev", Contact: "dev@example.com"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid app info rejected: %v", err)
	}

	tests := []struct {
		name string
		app  AppInfo
	}{
		{"empty title", AppInfo{}},
		{"title too long", AppInfo{Title: strings.Repeat("x", 65)}},
		{"description too long", AppInfo{Title: "a", Description: strings.Repeat("x", 257)}},
		{"bad category", AppInfo{Title: "a", SupportedDevices: []effect.Category{200}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.app.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOperationString(t *testing.T) {
	if OpQueryDevice.String() != "query-device" {
		t.Errorf("OpQueryDevice = %q", OpQueryDevice.String())
	}
	if Operation(99).String() != "unknown" {
		t.Errorf("unknown op = %q", Operation(99).String())
	}
}
