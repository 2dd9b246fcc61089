package validation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/models"
)

func TestValidateFileExtension(t *testing.T) {
	for _, name := range []string{"mayor.csv", "MAYOR.CSV", "extracto.txt", "libro.xlsx", "libro.XLSM"} {
		_, err := ValidateFileExtension(name)
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"libro.xls", "libro.ods", "script.exe", "sinextension"} {
		_, err := ValidateFileExtension(name)
		assert.ErrorIs(t, err, ErrValidationFailed, name)
	}
}

func TestValidateFileContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		ext     string
		wantErr bool
	}{
		{"utf8 csv", []byte("Fecha;Importe\n01/01/2024;10\n"), ".csv", false},
		{"latin1 csv", []byte("Concepto;Importe\nReparaci\xf3n;10\n"), ".csv", false},
		{"csv with NUL", []byte("Fecha\x00;Importe"), ".csv", true},
		{"zip posing as csv", []byte("PK\x03\x04rest"), ".csv", true},
		{"xlsx", []byte("PK\x03\x04rest"), ".xlsx", false},
		{"text posing as xlsx", []byte("Fecha;Importe"), ".xlsx", true},
		{"empty", []byte{}, ".csv", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.content)
			err := ValidateFileContent(r, tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.content)), r.Size())
			pos, _ := r.Seek(0, 1)
			assert.Zero(t, pos, "read position must be reset")
		})
	}
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType(""))
	assert.NoError(t, ValidateClientContentType("text/csv; charset=utf-8"))
	assert.NoError(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.Error(t, ValidateClientContentType("image/png"))
}

func TestValidateDateString(t *testing.T) {
	d, err := ValidateDateString(" 2024-03-05 ", "from")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d)

	d, err = ValidateDateString("", "from")
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = ValidateDateString("05/03/2024", "from")
	assert.ErrorIs(t, err, ErrValidationFailed)

	assert.NoError(t, ValidateDateRange("2024-01-01", "2024-12-31"))
	assert.NoError(t, ValidateDateRange("", "2024-12-31"))
	assert.Error(t, ValidateDateRange("2024-12-31", "2024-01-01"))
}

func TestValidateDomainValues(t *testing.T) {
	tipo, err := ValidateTransactionType("Gasto")
	require.NoError(t, err)
	assert.Equal(t, models.TipoGasto, tipo)

	tipo, err = ValidateTransactionType("")
	require.NoError(t, err)
	assert.Empty(t, tipo)

	_, err = ValidateTransactionType("transferencia")
	assert.Error(t, err)

	cat, err := ValidateCategory("gasto_seguro")
	require.NoError(t, err)
	assert.Equal(t, models.CategoriaGastoSeguro, cat)
	_, err = ValidateCategory("seguros")
	assert.Error(t, err)
}

func TestValidateIDs(t *testing.T) {
	id, err := ValidateIDString("12", "companyId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	id, err = ValidateIDString("", "companyId")
	require.NoError(t, err)
	assert.Zero(t, id)

	_, err = ValidateIDString("-3", "companyId")
	assert.Error(t, err)
	_, err = ValidateIDString("abc", "companyId")
	assert.Error(t, err)

	assert.NoError(t, ValidateIDList([]int64{1, 2, 3}))
	assert.Error(t, ValidateIDList(nil))
	assert.Error(t, ValidateIDList([]int64{1, 0}))
	assert.Error(t, ValidateIDList(make([]int64, MaxIDsPerRequest+1)))
}

func TestValidateInventoryName(t *testing.T) {
	name, err := ValidateInventoryName("  Edificio <b>Central</b> ", "name", "test", true)
	require.NoError(t, err)
	assert.Equal(t, "Edificio Central", name)

	_, err = ValidateInventoryName("   ", "name", "test", true)
	assert.Error(t, err)

	name, err = ValidateInventoryName("", "address", "test", false)
	require.NoError(t, err)
	assert.Empty(t, name)

	_, err = ValidateInventoryName("=HYPERLINK(\"x\")", "name", "test", true)
	assert.Error(t, err)

	_, err = ValidateInventoryName("<script>alert(1)</script>", "name", "test", true)
	assert.Error(t, err)

	_, err = ValidateInventoryName(strings.Repeat("a", DefaultMaxStringLength+1), "name", "test", true)
	assert.Error(t, err)
}

func TestSanitizers(t *testing.T) {
	assert.Equal(t, "Pago cuota", SanitizeText("<i>Pago</i> cuota"))
	assert.Equal(t, "ab\tc", StripUnprintable("a\u200bb\tc"))
}

func TestSanitizePlainText_KeepsTypedCharacters(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Luz & agua 'enero'", "Luz & agua 'enero'"},
		{"a < b", "a < b"},
		{"F&A-1", "F&A-1"},
		{"Comunidad \"El Pinar\"", "Comunidad \"El Pinar\""},
		{"<i>Pago</i> cuota", "Pago cuota"},
		{"<script>alert(1)</script>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizePlainText(tt.in))
		})
	}
}

func TestValidateInventoryName_PlainTextAndEncodedMarkup(t *testing.T) {
	name, err := ValidateInventoryName("Pérez & Hijos", "name", "test", true)
	assert.NoError(t, err)
	assert.Equal(t, "Pérez & Hijos", name)

	_, err = ValidateInventoryName("&lt;script&gt;alert(1)&lt;/script&gt;", "name", "test", true)
	assert.Error(t, err)
}

func TestValidateUsernameAndPassword(t *testing.T) {
	assert.NoError(t, ValidateUsername("ana.gestor"))
	assert.Error(t, ValidateUsername("ana gestor"))
	assert.Error(t, ValidateUsername(""))
	assert.NoError(t, ValidatePassword("supersecret"))
	assert.Error(t, ValidatePassword("short"))
}
