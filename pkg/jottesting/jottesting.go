// Package jottesting provides shared fixtures and helpers for testing the
// jot application.
//
// The fixtures mirror the default seed data: a root account and two example
// notes. Test suites seed a store through [SeedStore] and then exercise the
// HTTP stack or the store contract directly against known content.
package jottesting

import (
	"context"
	"fmt"

	"github.com/jotpad/jot/pkg/models"
	"github.com/jotpad/jot/pkg/store"
)

// Credentials of the fixture account.
const (
	Username = "root"
	Name     = "Superuser"
	Password = "sekret"
)

// MalformedID is a string that is not a valid note id. Handlers must reject
// it with 400 before consulting the store.
const MalformedID = "5a3d5da59070081a82a3445"

// InitialNotes returns the canonical fixture notes, owned by ownerID, in the
// order they are inserted.
func InitialNotes(ownerID models.UserID) []*models.Note {
	return []*models.Note{
		{Content: "HTML IS easy", Important: false, UserID: ownerID},
		{Content: "Browser can execute only JavaScript", Important: true, UserID: ownerID},
	}
}

// SeedStore populates s with the fixture account and notes and returns the
// created user with its note list filled in.
func SeedStore(ctx context.Context, s store.Store) (*models.User, error) {
	user := &models.User{
		Username: Username,
		Name:     Name,
	}
	if err := user.SetPassword(Password); err != nil {
		return nil, err
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}

	for _, note := range InitialNotes(user.ID) {
		if err := s.CreateNote(ctx, note); err != nil {
			return nil, fmt.Errorf("failed to seed note: %w", err)
		}
		user.Notes = append(user.Notes, note.ID)
	}
	if err := s.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update seeded user: %w", err)
	}

	return user, nil
}

// AbsentNoteID returns a well-formed note id that matches no record in s: a
// note is created and immediately deleted, and its id returned.
func AbsentNoteID(ctx context.Context, s store.Store, ownerID models.UserID) (models.NoteID, error) {
	note := &models.Note{Content: "willremovethissoon", UserID: ownerID}
	if err := s.CreateNote(ctx, note); err != nil {
		return models.NoteID{}, err
	}
	if err := s.DeleteNote(ctx, note.ID); err != nil {
		return models.NoteID{}, err
	}
	return note.ID, nil
}
