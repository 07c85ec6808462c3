package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewObjectID returns a fresh 24-character hex identity token.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// IsObjectID reports whether s has the shape of an identity token.
func IsObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// NormalizeObjectID returns the stored form of an identity token. Hex digits
// are case-insensitive but ids are always stored in lowercase.
func NormalizeObjectID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
