//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pet-adoption-api"
	ConsumerName = "adoption-portal"

	StateAdoptable        = "verified user U1 and available pet P1 exist"
	StateUnverifiedUser   = "unverified user U2 and available pet P2 exist"
	StatePetAlreadyTaken  = "pet P1 is already adopted by U1"
	StateAdoptionExists   = "adoption A1 of pet P1 by U1 exists"
	StateAdoptionsMissing = "no adoptions exist"
)

const (
	AdopterID         = "U1"
	UnverifiedUserID  = "U2"
	AvailablePetID    = "P1"
	SecondPetID       = "P2"
	ExistingAdoption  = "A1"
	MissingAdoptionID = "A404"
	ExampleDateTime   = "2024-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAdoptionPayload is the body returned for adoption A1.
func ExampleAdoptionPayload() map[string]any {
	return map[string]any{
		"id":       ExistingAdoption,
		"userId":   AdopterID,
		"petId":    AvailablePetID,
		"dateTime": ExampleDateTime,
		"links": map[string]any{
			"self": "/adoptions/adoption/" + ExistingAdoption,
			"user": "/users/user/" + AdopterID,
			"pet":  "/pets/pet/" + AvailablePetID,
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
