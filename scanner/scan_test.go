package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.Kind() != EOF {
			deflt := token.(DefaultToken)
			t.Logf(" %4v | %15s | @%5d", token.Kind(), deflt.Lexeme(), deflt.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestStreamStopsAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.scanner")
	defer teardown()
	//
	scanner := GoTokenizer("stream test", strings.NewReader("1+2"))
	stream := GoStream(scanner)
	count := 0
	for {
		_, ok := stream.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("Expected 3 tokens from the stream, is %d", count)
	}
	if _, ok := stream.Next(); ok {
		t.Errorf("Expected the stream to stay exhausted")
	}
}

var lispTokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Error(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		scanner, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := scanner.NextToken()
		count := 0
		for token.Kind() != EOF {
			deflt := token.(DefaultToken)
			t.Logf(" %4v | %15s | @%5d", token.Kind(), deflt.Lexeme(), deflt.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != lispTokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, lispTokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = 100
	tokenIds["ID"] = 101
	tokenIds["NUM"] = 102
	tokenIds["STRING"] = 103
	for i, lit := range literals {
		tokenIds[lit] = 110 + i
	}
	for i, kw := range keywords {
		tokenIds[kw] = 130 + i
	}
}
