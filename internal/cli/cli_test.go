package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/chat/telegram"
	"github.com/weijenchou/dogdietlinebot/internal/adapters/storage/memory"
	"github.com/weijenchou/dogdietlinebot/internal/config"
	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

func TestChatThenPetsList_SQLite(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "dogs.db"))

	in := strings.Join([]string{
		"Add pet",
		`name: Rex\`,
		`birthday: 2022-01-01\`,
		"weight: 10 kg",
		"Y",
		"Targets",
		`name: Rex\`,
		"status: 3",
	}, "\n") + "\n"

	stdout, _, err := executeCLI(t, in, "chat", "--owner", "o1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved!")
	assert.Contains(t, stdout, "393.64 kcal")
	assert.Contains(t, stdout, "551.09-629.82 kcal")
	assert.NotContains(t, stdout, "> ")

	stdout, _, err = executeCLI(t, "", "pets", "list", "--owner", "o1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rex")
	assert.Contains(t, stdout, "10 kg")
	assert.Contains(t, stdout, "0 kcal / 0 ml")
	// La consulta de metas por chat no guarda el estado.
	assert.NotContains(t, stdout, "Neutered adult")

	stdout, _, err = executeCLI(t, "", "pets", "list", "--owner", "o2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No pets found.")
}

func TestChat_ExitAndQuickReplies(t *testing.T) {
	setupEnv(t)

	stdout, _, err := executeCLI(t, "Fresh food photo\nexit\n\n", "chat", "--owner", "o1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[Camera]")
	assert.Contains(t, stdout, "dog diet assistant")
}

func TestOwnerRequired(t *testing.T) {
	setupEnv(t)

	_, _, err := executeCLI(t, "", "pets", "list")
	assert.ErrorIs(t, err, errOwnerRequired)

	_, _, err = executeCLI(t, "", "chat", "--owner", "  ")
	assert.ErrorIs(t, err, errOwnerRequired)
}

func TestTelegram_RequiresToken(t *testing.T) {
	setupEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, _, err := executeCLI(t, "", "telegram")
	assert.ErrorIs(t, err, telegram.ErrNotConfigured)
}

func TestServe_RequiresWebhookSecretWithJWT(t *testing.T) {
	setupEnv(t)
	t.Setenv("JWT_SECRET", "jwt-secret")

	_, _, err := executeCLI(t, "", "serve", "--port", "0")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("SESSION_IDLE_TIMEOUT", "soon")

	_, _, err := executeCLI(t, "", "pets", "list", "--owner", "o1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestChatTurn(t *testing.T) {
	img := filepath.Join(t.TempDir(), "food.jpg")
	require.NoError(t, os.WriteFile(img, []byte{0xff, 0xd8}, 0o600))

	turn, err := chatTurn("o1", "/image "+img)
	require.NoError(t, err)
	assert.Equal(t, conversation.TurnImage, turn.Kind)
	assert.Equal(t, []byte{0xff, 0xd8}, turn.Image)

	turn, err = chatTurn("o1", "/location 25.03 121.56")
	require.NoError(t, err)
	assert.Equal(t, conversation.ChoiceCurrentLocation, turn.Text)
	require.NotNil(t, turn.Location)
	assert.InDelta(t, 121.56, turn.Location.Lon, 1e-9)

	_, err = chatTurn("o1", "/location north")
	assert.Error(t, err)

	turn, err = chatTurn("o1", "name: Rex\nstatus: 3")
	require.NoError(t, err)
	assert.Equal(t, conversation.TurnText, turn.Kind)
	assert.Equal(t, "name: Rex\nstatus: 3", turn.Text)
}

func TestRenderTable(t *testing.T) {
	cols := []column{{Header: "Name"}, {Header: "Age", Align: text.AlignRight}}
	out := renderTable(cols, [][]string{{"Rex", "2"}, {"Milo"}}, "2 dogs")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Age")
	assert.NotContains(t, out, "NAME")
	assert.Contains(t, out, "Rex")
	assert.Contains(t, out, "Milo")
	assert.Contains(t, out, "2 dogs")
	assert.Empty(t, renderTable(nil, nil, ""))
}

func TestProfileRow_WithTarget(t *testing.T) {
	svc := pets.NewService(memory.NewPetRepo(), nil).WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	})
	ctx := context.Background()
	_, err := svc.Create(ctx, "o1", pets.CreateInput{
		Name:      "Rex",
		BirthDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		WeightKg:  10,
		Status:    nutrition.StatusNeuteredAdult,
	})
	require.NoError(t, err)
	_, err = svc.RecordIntake(ctx, "o1", "Rex", 120, 300)
	require.NoError(t, err)

	prof, err := svc.Detail(ctx, "o1", "Rex")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Rex", "2", "10 kg", "3 Neutered adult (1-7 years)",
		"551-630 kcal", "500-600 ml", "120 kcal / 300 ml",
	}, profileRow(prof, svc))
	assert.Equal(t, "1 dog", petsFooter(1))
	assert.Equal(t, "3 dogs", petsFooter(3))
}

// setupEnv aísla la config del entorno del host.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, k := range []string{"DB_DSN", "SQLITE_PATH", "BREED_CATALOG_PATH", "GOOGLE_MAP_API_KEY", "AWS_REGION", "JWT_SECRET", "WEBHOOK_SECRET"} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
