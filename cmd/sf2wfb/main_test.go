package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputNameMirrorsCase(t *testing.T) {
	cases := map[string]string{
		"bank.sf2":    "bank.wfb",
		"BANK.SF2":    "BANK.WFB",
		"Bank.Sf2":    "Bank.Wfb",
		"bank.sF2":    "bank.wFb",
		"/a/b/c.sf2":  "/a/b/c.wfb",
	}
	for in, want := range cases {
		require.Equal(t, want, outputName(in), "input %q", in)
	}
}

func TestOutputNameNonSF2ExtensionStillSwapped(t *testing.T) {
	require.Equal(t, "patch.wfb", outputName("patch.sfz"))
}

func TestExpandInputsKeepsLiteralWhenNoGlobMatch(t *testing.T) {
	out, err := expandInputs([]string{"does-not-exist-*.sf2"})
	require.NoError(t, err)
	require.Equal(t, []string{"does-not-exist-*.sf2"}, out)
}
