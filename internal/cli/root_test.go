package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenroi/internal/cli"
	"github.com/rshade/greenroi/internal/config"
)

const inventoryCSV = `Equipment,Current number of equipment,Initial lifespan,Unit price,lease_fee_month
Screen,10,60,200,0
Laptop Dell,25,48,1200,35.5
iPhone 12,,,,
`

// testEnv isolates a test from the user's home and environment.
type testEnv struct {
	dir  string
	vars map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	return &testEnv{
		dir: dir,
		vars: map[string]string{
			config.EnvLogLevel: "error",
			config.EnvCacheDir: filepath.Join(dir, "cache"),
		},
	}
}

func (e *testEnv) lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes greenroi with args and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithArgs("test", append([]string{"greenroi"}, args...), e.lookup)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type analyzeJSON struct {
	Rows []struct {
		Label      string  `json:"label"`
		Category   string  `json:"category"`
		CarbonCost float64 `json:"carbon_cost"`
		TCOKeep    float64 `json:"tco_keep"`
		Action     string  `json:"action"`
	} `json:"rows"`
	Summary struct {
		Rows  int `json:"rows"`
		Units int `json:"units"`
	} `json:"summary"`
	Fabrication string `json:"fabrication_source"`
	Cloud       *struct {
		TotalKg    float64 `json:"total_kg"`
		CarbonCost float64 `json:"carbon_cost"`
	} `json:"cloud"`
	Pagination *struct {
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

func decodeAnalyze(t *testing.T, out string) analyzeJSON {
	t.Helper()
	var v analyzeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	return v
}

func TestNewRootCmd(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "greenroi", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"analyze", "cloud", "classify", "config", "cache"})
}

func TestAnalyze_Table(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	out, _, err := env.run(t, "analyze", "--inventory", inv)
	require.NoError(t, err)

	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "Screen")
	assert.Contains(t, out, "Laptop Dell")
	assert.Contains(t, out, "Keep/Keep/Keep")
	assert.Contains(t, out, "Embodied CO2 source: static")
	assert.Contains(t, out, "FLEET SUMMARY")
	assert.Contains(t, out, "3 / 36")
}

func TestAnalyze_CSV(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	out, _, err := env.run(t, "analyze", "-i", inv, "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "label,category,quantity,annual_kwh"))
	assert.True(t, strings.HasPrefix(lines[1], "Screen,screen,10,496.4,10.9,40.0,100.1,12.7,112.8,"), lines[1])
}

func TestAnalyze_JSONWithOverrides(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	out, _, err := env.run(t, "analyze", "-i", inv, "-o", "json", "--carbon-price", "0")
	require.NoError(t, err)

	v := decodeAnalyze(t, out)
	require.Len(t, v.Rows, 3)
	assert.Equal(t, 3, v.Summary.Rows)
	assert.Equal(t, 36, v.Summary.Units)
	assert.Equal(t, "static", v.Fabrication)
	for _, r := range v.Rows {
		assert.InDelta(t, 0, r.CarbonCost, 1e-9, r.Label)
	}
	assert.Nil(t, v.Pagination)
}

func TestAnalyze_EnvOverride(t *testing.T) {
	env := newTestEnv(t)
	env.vars[config.EnvOutputFormat] = "json"
	env.vars[config.EnvCarbonPrice] = "0"
	inv := env.write(t, "parc.csv", inventoryCSV)

	out, _, err := env.run(t, "analyze", "-i", inv)
	require.NoError(t, err)
	v := decodeAnalyze(t, out)
	assert.InDelta(t, 0, v.Rows[0].CarbonCost, 1e-9)

	// Flags win over the environment.
	out, _, err = env.run(t, "analyze", "-i", inv, "--carbon-price", "1")
	require.NoError(t, err)
	v = decodeAnalyze(t, out)
	assert.Greater(t, v.Rows[0].CarbonCost, 0.0)
}

func TestAnalyze_ConfigFile(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)
	cfgPath := env.write(t, "custom.yaml", "output:\n  default_format: ndjson\n")

	out, _, err := env.run(t, "analyze", "-i", inv, "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &row))
	assert.Equal(t, "Screen", row["label"])
}

func TestAnalyze_SortAndPaginate(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	out, _, err := env.run(t, "analyze", "-i", inv, "-o", "json", "--sort", "label:desc", "--limit", "2")
	require.NoError(t, err)

	v := decodeAnalyze(t, out)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "Screen", v.Rows[0].Label)
	assert.Equal(t, "Laptop Dell", v.Rows[1].Label)
	assert.Equal(t, 3, v.Summary.Rows)
	require.NotNil(t, v.Pagination)
	assert.Equal(t, 3, v.Pagination.TotalItems)
	assert.Equal(t, 2, v.Pagination.TotalPages)
}

func TestAnalyze_Errors(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing inventory flag", args: []string{"analyze"}, wantErr: "inventory"},
		{name: "missing file", args: []string{"analyze", "-i", filepath.Join(env.dir, "nope.csv")}, wantErr: "no such file"},
		{name: "bad perf ratio", args: []string{"analyze", "-i", inv, "--perf-ratio", "0"}, wantErr: "PerfRatio"},
		{name: "negative carbon price", args: []string{"analyze", "-i", inv, "--carbon-price", "-1"}, wantErr: "CarbonPricePerKg"},
		{name: "bad output", args: []string{"analyze", "-i", inv, "-o", "xml"}, wantErr: "DefaultFormat"},
		{name: "bad sort field", args: []string{"analyze", "-i", inv, "--sort", "colour"}, wantErr: "invalid sort field"},
		{name: "mixed pagination", args: []string{"analyze", "-i", inv, "--page", "1", "--page-size", "1", "--offset", "1"}, wantErr: "mutually exclusive"},
		{name: "bad export extension", args: []string{"analyze", "-i", inv, "--export", filepath.Join(env.dir, "out.pdf")}, wantErr: ".csv or .xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAnalyze_WeightWarning(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)

	_, stderr, err := env.run(t, "analyze", "-i", inv, "-o", "csv", "--weight-financial", "0.9")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: vote weights sum to 1.500")
}

func TestAnalyze_ExportAndCloud(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)
	cloud := env.write(t, "aws.csv", "service,carbon_kg_co2e\nEC2,100\nS3,300\n")
	export := filepath.Join(env.dir, "out.xlsx")

	out, stderr, err := env.run(t, "analyze", "-i", inv, "-o", "json",
		"--cloud-emissions", cloud, "--export", export)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Results exported to")
	_, statErr := os.Stat(export)
	require.NoError(t, statErr)

	v := decodeAnalyze(t, out)
	require.NotNil(t, v.Cloud)
	assert.InDelta(t, 400, v.Cloud.TotalKg, 1e-9)
	assert.InDelta(t, 100, v.Cloud.CarbonCost, 1e-9)
}

// boaviztaStub answers every archetype with kg embodied CO2.
func boaviztaStub(t *testing.T, kg float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"impacts": map[string]any{
				"gwp": map[string]any{"unit": "kgCO2eq", "embedded": map[string]any{"value": kg}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyze_BoaviztaSource(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", "Equipment,count,lifespan_months\nScreen,10,60\n")
	srv := boaviztaStub(t, 400)

	out, _, err := env.run(t, "analyze", "-i", inv, "-o", "csv",
		"--fabrication-source", "boavizta", "--fabrication-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Screen,screen,10,496.4,10.9,80.0,")

	// A second run is served from the cache once the API is gone.
	srv.Close()
	out, _, err = env.run(t, "analyze", "-i", inv, "-o", "csv",
		"--fabrication-source", "boavizta", "--fabrication-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Screen,screen,10,496.4,10.9,80.0,")

	// Without the cache the static table takes over.
	out, _, err = env.run(t, "analyze", "-i", inv, "-o", "csv", "--no-cache",
		"--fabrication-source", "boavizta", "--fabrication-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Screen,screen,10,496.4,10.9,40.0,")
}

func TestAnalyze_BoaviztaFailureMatchesStatic(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", inventoryCSV)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	static, _, err := env.run(t, "analyze", "-i", inv, "-o", "csv")
	require.NoError(t, err)

	remote, _, err := env.run(t, "analyze", "-i", inv, "-o", "csv", "--no-cache",
		"--fabrication-source", "boavizta", "--fabrication-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, static, remote)
}

func TestCloud(t *testing.T) {
	env := newTestEnv(t)
	file := env.write(t, "azure.csv", "Date;Service;Emissions (kg CO₂e)\n2024-01;VM;1 000,5\n2024-02;VM;n/a\n2024-03;SQL;499,5\n")

	out, _, err := env.run(t, "cloud", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Emissions (kg CO₂e)")
	assert.Contains(t, out, "1,500.0 kg CO2e")
	assert.Contains(t, out, "€375.00")
	assert.Contains(t, out, "(1 skipped)")

	out, _, err = env.run(t, "cloud", "-f", file, "--carbon-price", "1", "-o", "json")
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.InDelta(t, 1500, v["total_kg"], 1e-9)
	assert.InDelta(t, 1500, v["carbon_cost"], 1e-9)
	assert.InDelta(t, 2, v["rows"], 0)
}

func TestCloud_NoCarbonColumn(t *testing.T) {
	env := newTestEnv(t)
	file := env.write(t, "bad.csv", "service,cost\nEC2,12\n")

	_, _, err := env.run(t, "cloud", "--file", file)
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "classify", "Ecran Dell 27", "Smartphone Samsung A54", "Switch Cisco", "Stapler")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "screen")
	assert.Contains(t, lines[1], "496.4")
	assert.Contains(t, lines[2], "smartphone")
	assert.Contains(t, lines[3], "switch/router")
	assert.Contains(t, lines[4], "laptop")

	_, _, err = env.run(t, "classify")
	require.Error(t, err)
}

func TestConfigInitShowValidate(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	path := filepath.Join(env.dir, config.ConfigFileName)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	_, _, err = env.run(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = env.run(t, "config", "init", "--force")
	require.NoError(t, err)

	env.vars[config.EnvCarbonPrice] = "0.5"
	out, _, err = env.run(t, "config", "show", "-o", "json")
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.InDelta(t, 0.5, shown.Assumptions.CarbonPricePerKg, 1e-9)

	out, _, err = env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "carbon_price_per_kg: 0.5")

	out, _, err = env.run(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Carbon price:       0.5000")
}

func TestConfigValidate_Invalid(t *testing.T) {
	env := newTestEnv(t)
	bad := env.write(t, "bad.yaml", "processing:\n  workers: 500\n")

	_, _, err := env.run(t, "config", "validate", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")

	// A broken file still lets init repair it.
	out, _, err := env.run(t, "config", "init", "--force", "--config", bad)
	require.NoError(t, err)
	assert.Contains(t, out, bad)

	_, _, err = env.run(t, "config", "validate", "--config", bad)
	require.NoError(t, err)

	// Other commands refuse to run on a broken file.
	_, _, err = env.run(t, "config", "show", "--config", env.write(t, "worse.yaml", "processing:\n  batch_size: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BatchSize")
}

func TestConfig_EnvOverridesFile(t *testing.T) {
	env := newTestEnv(t)
	loud := env.write(t, "loud.yaml", "logging:\n  level: loud\n")

	// GREENROI_LOG_LEVEL is applied after the file, before validation.
	out, _, err := env.run(t, "config", "show", "-o", "json", "--config", loud)
	require.NoError(t, err)
	var shown config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "error", shown.Logging.Level)

	delete(env.vars, config.EnvLogLevel)
	_, _, err = env.run(t, "config", "show", "--config", loud)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	inv := env.write(t, "parc.csv", "Equipment,count\nScreen,1\nLaptop,1\n")
	srv := boaviztaStub(t, 100)

	_, _, err := env.run(t, "analyze", "-i", inv, "-o", "csv",
		"--fabrication-source", "boavizta", "--fabrication-url", srv.URL)
	require.NoError(t, err)

	out, _, err := env.run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   2")
	assert.Contains(t, out, "TTL:       7d")

	out, _, err = env.run(t, "cache", "purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired entries")

	out, _, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared")

	out, _, err = env.run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries:   0")
}

func TestDebugFlag(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "--debug", "classify", "laptop")
	require.NoError(t, err)
}
