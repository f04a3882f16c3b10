package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/helpers"
)

func TestReadPasswordFromPipe(t *testing.T) {
	pw, err := readPassword(strings.NewReader("s3cret-pass\n"), &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", pw)
}

func TestReadPasswordWithoutNewline(t *testing.T) {
	pw, err := readPassword(strings.NewReader("last-line"), &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, "last-line", pw)
}

func TestAddUserOptionsValidation(t *testing.T) {
	ok := addUserOptions{Username: "registrar", Email: "registrar@school.test", Role: "admin"}
	assert.NoError(t, helpers.Validate(ok))

	bad := ok
	bad.Role = "parent"
	assert.Error(t, helpers.Validate(bad))

	bad = ok
	bad.Email = "not-an-email"
	assert.Error(t, helpers.Validate(bad))
}

func TestProfileNamesDefaultToUsername(t *testing.T) {
	first, last := addUserOptions{Username: "jdoe"}.names()
	assert.Equal(t, "jdoe", first)
	assert.Equal(t, "-", last)

	first, last = addUserOptions{Username: "jdoe", First: "Jane", Last: "Doe"}.names()
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)
}

func TestMigrateRejectsUnknownAction(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	assert.Error(t, root.Execute())
}
