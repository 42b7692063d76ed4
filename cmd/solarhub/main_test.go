package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/solarhub/solarhub-admin/testing"
)

func TestLoadCalcCommand(t *testing.T) {
	root := newRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"loadcalc", "--mode", "solar", "--room", "apartment", "--set", "1=0"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Solar Panel Calculator: Apartment")
	assert.Contains(t, out.String(), "Recommended inverter:")
}

func TestLoadCalcRequiresRoom(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"loadcalc", "--mode", "solar"})
	assert.Error(t, root.Execute())
}

func TestServeSkipsStartupInTestMode(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"serve"})
	assert.NoError(t, root.Execute())
}
