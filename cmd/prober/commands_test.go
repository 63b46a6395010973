package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPoolCommandWeights(t *testing.T) {
	out, err := runCLI(t, "pool", "--pool", "place", "--weights", "0.1,0.2,0.2,0.05,0.05,0.3,0.1")
	require.NoError(t, err)

	var place []float64
	require.NoError(t, json.Unmarshal([]byte(out), &place))
	require.Len(t, place, 7)
	assert.InDelta(t, 0.7414, place[5], 1e-4)
}

func TestPoolCommandOdds(t *testing.T) {
	out, err := runCLI(t, "pool", "--pool", "quinella", "--odds", "2,4,4", "--names", "a,b,c")
	require.NoError(t, err)

	var price struct {
		Pool          string      `json:"pool"`
		Runners       []string    `json:"runners"`
		Probabilities [][]float64 `json:"probabilities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &price))
	assert.Equal(t, "quinella", price.Pool)
	assert.Equal(t, []string{"a", "b", "c"}, price.Runners)
	assert.Equal(t, price.Probabilities[0][1], price.Probabilities[1][0])
}

func TestPoolCommandErrors(t *testing.T) {
	_, err := runCLI(t, "pool", "--pool", "exacta", "--weights", "1,2,3")
	assert.Error(t, err)

	_, err = runCLI(t, "pool", "--pool", "win")
	assert.Error(t, err)

	_, err = runCLI(t, "pool", "--pool", "quartet", "--weights", "1,2,3,4")
	assert.Error(t, err)
}

func TestPoolFlagIsTrimmed(t *testing.T) {
	out, err := runCLI(t, "pool", "--pool", " win ", "--weights", "1,1,2")
	require.NoError(t, err)

	var win []float64
	require.NoError(t, json.Unmarshal([]byte(out), &win))
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.5}, win, 1e-12)
}

func TestSetupProductionLeavesProcessEnvironment(t *testing.T) {
	t.Setenv("HARVILLE_APP_ENVIRONMENT", "production")
	t.Setenv("ENVIRONMENT", "")

	a := &app{logLevel: "error"}
	require.NoError(t, a.setup())

	assert.True(t, a.cfg.IsProduction())
	assert.IsType(t, &logrus.JSONFormatter{}, a.logger.Formatter)
	assert.Empty(t, os.Getenv("ENVIRONMENT"))
}

func TestStakeCommand(t *testing.T) {
	out, err := runCLI(t, "stake", "--odds", "1.87,3.4,3.4", "--prob", "0.592,0.285,0.123",
		"--names", "horse1,horse2,horse3", "--bankroll", "1000")
	require.NoError(t, err)

	var plan struct {
		TotalProportion float64 `json:"total_proportion"`
		Allocations     []struct {
			Label      string  `json:"label"`
			Proportion float64 `json:"proportion"`
		} `json:"allocations"`
		Stakes []struct {
			Label  string `json:"label"`
			Amount string `json:"amount"`
		} `json:"stakes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.InDelta(t, 0.2812, plan.TotalProportion, 1e-4)
	require.Len(t, plan.Allocations, 3)
	assert.Equal(t, "horse1", plan.Allocations[0].Label)
	require.Len(t, plan.Stakes, 3)
	assert.Equal(t, "207.62", plan.Stakes[0].Amount)
}

func TestPoolsCommand(t *testing.T) {
	out, err := runCLI(t, "pools")
	require.NoError(t, err)
	assert.Contains(t, out, "first_4")
	assert.Contains(t, out, "place_q")
}
