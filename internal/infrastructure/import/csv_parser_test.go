package csvimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("maps columns and applies the skip rules", func(t *testing.T) {
		parser := NewParser(WithMapping(ColumnMapping{ItemName: 0, Variety: 1, Quantity: 2, UnitPrice: 3}))
		data := []byte("品名,品種,数量,単価\n" +
			"バラ,サムライ,10,150\n" +
			",,5,100\n" +
			"ユリ,,0,200\n" +
			"カーネーション,,3,\n")

		result, err := parser.Parse(data)
		require.NoError(t, err)

		assert.Equal(t, 4, result.RowCount)
		assert.Equal(t, 2, result.Skipped)
		require.Len(t, result.Rows, 2)

		first := result.Rows[0]
		assert.Equal(t, "バラ", first.ItemName)
		assert.Equal(t, "サムライ", first.Variety)
		assert.Equal(t, 10, first.Quantity)
		require.NotNil(t, first.UnitPrice)
		assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("150")))

		// missing price is nil, not zero
		assert.Nil(t, result.Rows[1].UnitPrice)
	})

	t.Run("tab delimited market exports parse with separators in numbers", func(t *testing.T) {
		parser := NewParser(
			WithDelimiter('\t'),
			WithMapping(ColumnMapping{ItemName: 0, Variety: -1, Quantity: 1, UnitPrice: 2}),
		)
		data := []byte("品名\t数量\t単価\nバラ\t1,200\t¥1,500\n")

		result, err := parser.Parse(data)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)

		assert.Equal(t, 1200, result.Rows[0].Quantity)
		require.NotNil(t, result.Rows[0].UnitPrice)
		assert.True(t, result.Rows[0].UnitPrice.Equal(decimal.RequireFromString("1500")))
	})

	t.Run("multiple header rows can be skipped", func(t *testing.T) {
		parser := NewParser(WithSkipHeader(2))
		data := []byte("大田花き 仕入一覧\n品名,数量\nバラ,10\n")

		result, err := parser.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, 1, result.RowCount)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "バラ", result.Rows[0].ItemName)
	})

	t.Run("a header-only file has no data rows", func(t *testing.T) {
		parser := NewParser()
		_, err := parser.Parse([]byte("品名,数量\n"))
		assert.ErrorIs(t, err, ErrNoDataRows)
	})

	t.Run("ragged rows fall back to empty fields", func(t *testing.T) {
		parser := NewParser(WithMapping(ColumnMapping{ItemName: 0, Variety: -1, Quantity: 1, UnitPrice: 2}))
		data := []byte("品名,数量,単価\nバラ,10\n")

		result, err := parser.Parse(data)
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Nil(t, result.Rows[0].UnitPrice)
	})
}

func TestHeadersAndRawRows(t *testing.T) {
	data := []byte("品名,数量\nバラ,10\nユリ,5\nキク,7\n")
	parser := NewParser()

	headers, err := parser.Headers(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"品名", "数量"}, headers)

	rows, err := parser.RawRows(data, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"バラ", "10"}, rows[0])

	_, err = parser.Headers(nil)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestDecodeToUTF8(t *testing.T) {
	t.Run("valid utf-8 passes through", func(t *testing.T) {
		decoded, used, err := DecodeToUTF8([]byte("品名,数量\n"), EncodingUTF8)
		require.NoError(t, err)
		assert.Equal(t, EncodingUTF8, used)
		assert.Equal(t, "品名,数量\n", string(decoded))
	})

	t.Run("utf-8 BOM is stripped", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("品名,数量\n")...)
		decoded, _, err := DecodeToUTF8(data, EncodingUTF8)
		require.NoError(t, err)
		assert.Equal(t, "品名,数量\n", string(decoded))
	})

	t.Run("shift_jis declared encoding decodes", func(t *testing.T) {
		// "バラ" in Shift_JIS
		data := []byte{0x83, 0x6F, 0x83, 0x89}
		decoded, used, err := DecodeToUTF8(data, EncodingShiftJIS)
		require.NoError(t, err)
		assert.Equal(t, EncodingShiftJIS, used)
		assert.Equal(t, "バラ", string(decoded))
	})

	t.Run("wrong declaration falls through to cp932", func(t *testing.T) {
		data := []byte{0x83, 0x6F, 0x83, 0x89}
		decoded, used, err := DecodeToUTF8(data, EncodingUTF8)
		require.NoError(t, err)
		assert.Equal(t, EncodingCP932, used)
		assert.Equal(t, "バラ", string(decoded))
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, _, err := DecodeToUTF8(nil, EncodingUTF8)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
}
