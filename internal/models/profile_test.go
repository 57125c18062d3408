package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfile_ContactFieldsNeverSerialized(t *testing.T) {
	p := Profile{
		UserID:   1,
		FullName: "Ayesha Khan",
		Phone:    "+923001234567",
		Whatsapp: "+923001234567",
	}

	out, err := json.Marshal(p)
	assert.NoError(t, err)
	assert.NotContains(t, string(out), "+923001234567")
	assert.NotContains(t, string(out), "phone")
	assert.NotContains(t, string(out), "whatsapp")
}

func TestProfile_Public(t *testing.T) {
	p := Profile{
		UserID:        1,
		FullName:      "Ayesha Khan",
		City:          "Lahore",
		Phone:         "+923001234567",
		Whatsapp:      "+923001234567",
		IDDocumentURL: "https://cdn/id.pdf",
		SelfieURL:     "https://cdn/selfie.jpg",
		IsApproved:    true,
		IsVerified:    true,
		IsBlocked:     true,
	}

	pub := p.Public()
	assert.Equal(t, "Ayesha Khan", pub.FullName)
	assert.Equal(t, "Lahore", pub.City)
	assert.True(t, pub.IsVerified)

	// The projection must not leak contact, document, or moderation
	// internals.
	out, err := json.Marshal(pub)
	assert.NoError(t, err)
	assert.NotContains(t, string(out), "+923001234567")
	assert.NotContains(t, string(out), "id_document_url")
	assert.NotContains(t, string(out), "selfie_url")
	assert.NotContains(t, string(out), "is_blocked")
	assert.NotContains(t, string(out), "is_approved")
}

func TestProfile_Age(t *testing.T) {
	t.Run("no date of birth", func(t *testing.T) {
		p := Profile{}
		assert.Equal(t, 0, p.Age())
	})

	t.Run("birthday already passed this year", func(t *testing.T) {
		dob := time.Now().AddDate(-30, 0, -1)
		p := Profile{DateOfBirth: &dob}
		assert.Equal(t, 30, p.Age())
	})

	t.Run("birthday still ahead this year", func(t *testing.T) {
		dob := time.Now().AddDate(-30, 0, 1)
		p := Profile{DateOfBirth: &dob}
		assert.Equal(t, 29, p.Age())
	})
}
