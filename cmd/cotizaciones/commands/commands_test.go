package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `{
  "clientes": [{"id": "c1", "nombre": "Acme"}],
  "cotizaciones": [{
    "id": "q1",
    "numero": "COT-2025-0001",
    "clienteId": "c1",
    "fecha": "2025-01-15",
    "vigencia": "2025-02-14",
    "estatus": "aprobada",
    "iva": 16,
    "descuentoGlobal": 0,
    "items": [{"id": "i1", "tipo": "manual", "nombre": "Instalación", "cantidad": 1, "precio": 100, "descuento": 0}],
    "subtotal": 100, "descuentoMonto": 0, "subtotalConDescuento": 100, "ivaMonto": 16, "total": 116
  }]
}`

// run executes the CLI against a file store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	base := []string{"--driver", "file", "--path", dir, "--env-file", filepath.Join(dir, "missing.env")}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func importSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(file, []byte(sampleSnapshot), 0o644))
	out, err := run(t, dir, "snapshot", "import", file)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 clientes, 0 productos, 0 servicios, 1 cotizaciones\n", out)
	return dir
}

func TestSnapshotImportThenList(t *testing.T) {
	dir := importSample(t)

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "COT-2025-0001")
	assert.Contains(t, out, "15/01/2025")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Aprobada")
	assert.Contains(t, out, "$116.00")

	out, err = run(t, dir, "list", "--estatus", "borrador")
	require.NoError(t, err)
	assert.NotContains(t, out, "COT-2025-0001")

	_, err = run(t, dir, "list", "--estatus", "pagada")
	assert.Error(t, err)
}

func TestSnapshotExport(t *testing.T) {
	dir := importSample(t)
	out, err := run(t, dir, "snapshot", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"numero":"COT-2025-0001"`)
	assert.Contains(t, out, `"productos":[]`)
}

func TestNextNumber(t *testing.T) {
	out, err := run(t, t.TempDir(), "next-number")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("COT-%d-0001\n", time.Now().Year()), out)
}

func TestStatusAndDuplicate(t *testing.T) {
	dir := importSample(t)

	out, err := run(t, dir, "status", "q1", "rechazada")
	require.NoError(t, err)
	assert.Equal(t, "COT-2025-0001 Rechazada\n", out)

	_, err = run(t, dir, "status", "q1", "pagada")
	assert.Error(t, err)
	_, err = run(t, dir, "status", "nope", "enviada")
	assert.Error(t, err)

	out, err = run(t, dir, "duplicate", "q1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, fmt.Sprintf("COT-%d-", time.Now().Year())), out)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two quotations:\n%s", out)
}

func TestPDFExport(t *testing.T) {
	dir := importSample(t)
	target := filepath.Join(dir, "q1.pdf")

	out, err := run(t, dir, "pdf", "q1", "-o", target)
	require.NoError(t, err)
	assert.Equal(t, target+"\n", out)

	body, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestTotals(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "q.json")
	doc := `{"iva":"16","descuentoGlobal":10,"items":[{"nombre":"Cable","cantidad":2,"precio":50}]}`
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))

	out, err := run(t, dir, "totals", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Subtotal:")
	assert.Contains(t, out, "- $10.00")
	assert.Contains(t, out, "$104.40")
}

func TestTotals_DefaultsIVA(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "q.json")
	doc := `{"items":[{"nombre":"Servicio","precio":100,"cantidad":2,"descuento":10}]}`
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))

	out, err := run(t, dir, "totals", file)
	require.NoError(t, err)
	assert.Contains(t, out, "IVA (16%):")
	assert.Contains(t, out, "$28.80")
	assert.Contains(t, out, "$208.80")
}

func TestTotals_RejectsOverflow(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"items":[{"nombre":"X","precio":1e200,"cantidad":1e200}]}`), 0o644))

	_, err := run(t, dir, "totals", file)
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	dir := importSample(t)
	out, err := run(t, dir, "stats", "--anio", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Total aprobado:  $116.00 (1)")
	assert.Contains(t, out, "MES 2025")
}
