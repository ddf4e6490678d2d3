package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/expense"
	"custodia/internal/importer"
)

func TestCSVParser_CustodiaProfile(t *testing.T) {
	csv := `Data;Descrição;Valor;Categoria;Situação
05/03/2024;Mensalidade escolar;R$ 1.250,00;Educação;pago
12/03/2024;Consulta pediatra;180,50;Saúde;pendente
20/03/2024;Plano de saúde;350,00;Saúde;reembolsado
`

	p := importer.NewCSVParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, "Mensalidade escolar", params[0].Description)
	assert.True(t, params[0].Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.Equal(t, expense.Date{Year: 2024, Month: time.March, Day: 5}, params[0].Date)
	assert.Equal(t, "educação", params[0].Category)
	assert.Equal(t, expense.StatusPaid, params[0].Status)

	assert.True(t, params[1].Amount.Equal(decimal.RequireFromString("180.50")))
	assert.Equal(t, expense.StatusPending, params[1].Status)
	assert.Equal(t, expense.StatusReimbursed, params[2].Status)
}

func TestCSVParser_GenericProfile(t *testing.T) {
	csv := `date,description,amount,category,status
2024-03-05,School tuition,1250.00,education,paid
2024-03-12,Doctor visit,180.50,health,
`

	p := importer.NewCSVParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "School tuition", params[0].Description)
	assert.Equal(t, "education", params[0].Category)
	assert.Equal(t, expense.StatusPaid, params[0].Status)

	// Missing status defaults to pending.
	assert.Equal(t, expense.StatusPending, params[1].Status)
}

func TestCSVParser_SkipsUnparsableRows(t *testing.T) {
	csv := `Data;Descrição;Valor;Categoria
05/03/2024;Válida;100,00;educação
not-a-date;Inválida;50,00;saúde
12/03/2024;Sem valor;abc;saúde

13/03/2024;Outra válida;75,00;lazer
`

	p := importer.NewCSVParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Válida", params[0].Description)
	assert.Equal(t, "Outra válida", params[1].Description)
}

func TestCSVParser_HeaderNotOnFirstRow(t *testing.T) {
	csv := `Exportado em 01/04/2024

Data;Descrição;Valor;Categoria
05/03/2024;Mensalidade;100,00;educação
`

	p := importer.NewCSVParser()
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
}

func TestCSVParser_UnknownLayout(t *testing.T) {
	csv := `foo;bar;baz
1;2;3
`

	p := importer.NewCSVParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestCSVParser_Windows1252Input(t *testing.T) {
	// "Data;Descrição;Valor;Categoria" with ç (0xE7) and ã (0xE3) in
	// Windows-1252, as spreadsheet exports commonly arrive.
	header := []byte{
		'D', 'a', 't', 'a', ';',
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'V', 'a', 'l', 'o', 'r', ';',
		'C', 'a', 't', 'e', 'g', 'o', 'r', 'i', 'a', '\n',
	}
	row := []byte("05/03/2024;Refei\xe7\xe3o escolar;25,00;alimenta\xe7\xe3o\n")

	p := importer.NewCSVParser()
	params, err := p.Parse(strings.NewReader(string(header) + string(row)))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Refeição escolar", params[0].Description)
	assert.Equal(t, "alimentação", params[0].Category)
}
