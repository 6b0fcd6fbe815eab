package b3_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/b3"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
)

const statementHeader = "Data do Negócio;Tipo de Movimentação;Mercado;Prazo/Vencimento;Instituição;Código de Negociação;Quantidade;Preço;Valor"

// TestParseStatement covers the happy path of a semicolon-delimited export
// with Portuguese headers and Brazilian number formatting.
//
// WHY: the parser is the single entry point for brokerage data. Every typed
// field must come out exactly as the import pipeline expects it.
func TestParseStatement(t *testing.T) {
	csv := statementHeader + "\n" +
		"15/03/2024;Compra;Mercado à Vista;;CORRETORA XP;PETR4;100;R$ 38,50;R$ 3.850,00\n" +
		"18/03/2024;Venda;Mercado Fracionário;;CORRETORA XP;ABEV3F;5;12,10;60,50\n"

	stmt, err := b3.ParseStatement(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(stmt.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stmt.Rows))
	}

	first := stmt.Rows[0]
	if got, want := first.TradeDate, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("trade date = %v, want %v", got, want)
	}
	if first.MovementType != model.MovementBuy {
		t.Errorf("movement = %q, want %q", first.MovementType, model.MovementBuy)
	}
	if first.Ticker != "PETR4" {
		t.Errorf("ticker = %q, want PETR4", first.Ticker)
	}
	if first.Quantity != 100 {
		t.Errorf("quantity = %d, want 100", first.Quantity)
	}
	if first.Price != 38.50 {
		t.Errorf("price = %v, want 38.50", first.Price)
	}
	if first.Value != 3850.00 {
		t.Errorf("value = %v, want 3850.00", first.Value)
	}

	second := stmt.Rows[1]
	if second.MovementType != model.MovementSell {
		t.Errorf("movement = %q, want %q", second.MovementType, model.MovementSell)
	}
	if second.Market != "Mercado Fracionário" {
		t.Errorf("market = %q, want raw label preserved", second.Market)
	}
	if second.Ticker != "ABEV3F" {
		t.Errorf("ticker = %q, want raw ABEV3F before normalization", second.Ticker)
	}
}

// TestParseStatement_CommaDelimited verifies the fallback for files that a
// spreadsheet program re-saved with comma delimiters and ISO dates.
func TestParseStatement_CommaDelimited(t *testing.T) {
	csv := "Data do Negocio,Tipo de Movimentacao,Mercado,Instituicao,Codigo de Negociacao,Quantidade,Preco,Valor\n" +
		"2024-03-15,BUY,Mercado a Vista,NUINVEST,HGLG11,10,160.5,1605.0\n"

	stmt, err := b3.ParseStatement(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStatement failed: %v", err)
	}
	if len(stmt.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stmt.Rows))
	}

	row := stmt.Rows[0]
	if got, want := row.TradeDate, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("trade date = %v, want %v", got, want)
	}
	if row.MovementType != model.MovementBuy {
		t.Errorf("movement = %q, want %q", row.MovementType, model.MovementBuy)
	}
	if row.Price != 160.5 {
		t.Errorf("price = %v, want 160.5", row.Price)
	}
}

// TestParseStatement_MissingColumns asserts that header validation reports
// every absent column at once instead of failing one at a time.
func TestParseStatement_MissingColumns(t *testing.T) {
	csv := "Data do Negócio;Mercado;Código de Negociação\n" +
		"15/03/2024;Mercado à Vista;PETR4\n"

	_, err := b3.ParseStatement(strings.NewReader(csv))
	if !errors.Is(err, apperrors.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	for _, col := range []string{"TIPO DE MOVIMENTACAO", "INSTITUICAO", "QUANTIDADE", "PRECO", "VALOR"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error should name missing column %s: %v", col, err)
		}
	}
}

// TestParseStatement_Empty covers both an empty file and a header-only file.
func TestParseStatement_Empty(t *testing.T) {
	t.Run("EmptyFile", func(t *testing.T) {
		_, err := b3.ParseStatement(strings.NewReader(""))
		if !errors.Is(err, apperrors.ErrEmptyStatement) {
			t.Fatalf("expected ErrEmptyStatement, got %v", err)
		}
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		_, err := b3.ParseStatement(strings.NewReader(statementHeader + "\n"))
		if !errors.Is(err, apperrors.ErrEmptyStatement) {
			t.Fatalf("expected ErrEmptyStatement, got %v", err)
		}
	})
}

// TestParseStatement_MalformedRows asserts that the first bad row aborts the
// parse and that the error names the row index.
func TestParseStatement_MalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			name: "bad date",
			row:  "2024/99/99;Compra;Mercado à Vista;;XP;PETR4;100;38,50;3.850,00",
		},
		{
			name: "unknown movement",
			row:  "15/03/2024;Transferência;Mercado à Vista;;XP;PETR4;100;38,50;3.850,00",
		},
		{
			name: "zero quantity",
			row:  "15/03/2024;Compra;Mercado à Vista;;XP;PETR4;0;38,50;0,00",
		},
		{
			name: "unparseable price",
			row:  "15/03/2024;Compra;Mercado à Vista;;XP;PETR4;100;abc;3.850,00",
		},
		{
			name: "zero price",
			row:  "15/03/2024;Compra;Mercado à Vista;;XP;PETR4;100;0,00;3.850,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := statementHeader + "\n" +
				"14/03/2024;Compra;Mercado à Vista;;XP;VALE3;10;60,00;600,00\n" +
				tt.row + "\n"

			_, err := b3.ParseStatement(strings.NewReader(csv))
			if !errors.Is(err, apperrors.ErrMalformedRow) {
				t.Fatalf("expected ErrMalformedRow, got %v", err)
			}
			if !strings.Contains(err.Error(), "2") {
				t.Errorf("error should name row 2: %v", err)
			}
		})
	}
}
