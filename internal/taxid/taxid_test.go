package taxid

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateLengthDispatch(t *testing.T) {
	v := NewValidator(nil)

	err := v.Validate(context.Background(), "12345")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Reason != "CPF must contain 11 digits or CNPJ 14 digits." {
		t.Fatalf("unexpected reason %q", verr.Reason)
	}
}

func TestValidateCPF(t *testing.T) {
	v := NewValidator(nil)

	if err := v.Validate(context.Background(), "24945952078"); err != nil {
		t.Fatalf("expected valid CPF, got %v", err)
	}
	if err := v.Validate(context.Background(), "12345678901"); err == nil {
		t.Fatal("expected checksum rejection")
	}

	// 11 raw characters with punctuation: stripped before the checksum,
	// leaving too few digits.
	if err := v.Validate(context.Background(), "249.459.520"); err == nil {
		t.Fatal("expected rejection for punctuated short CPF")
	}
}

func TestValidateCNPJRegistryAccepts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cnpj/v1/19131243000197" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := NewValidator(NewBrasilAPIClient(srv.URL, srv.Client()))
	if err := v.Validate(context.Background(), "19131243000197"); err != nil {
		t.Fatalf("expected valid CNPJ, got %v", err)
	}
}

func TestValidateCNPJRegistryRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	v := NewValidator(NewBrasilAPIClient(srv.URL, srv.Client()))
	err := v.Validate(context.Background(), "19131243000197")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Reason != "CNPJ is invalid or not found in the registry." {
		t.Fatalf("unexpected reason %q", verr.Reason)
	}
}

func TestValidateCNPJRegistryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	v := NewValidator(NewBrasilAPIClient(srv.URL, nil))
	err := v.Validate(context.Background(), "19131243000197")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for transport failure, got %v", err)
	}
	// The transport failure says nothing about the identifier, so its
	// reason must differ from the registry's rejection message.
	if verr.Reason != "Failed to validate the CNPJ." {
		t.Fatalf("unexpected reason %q", verr.Reason)
	}
}
