package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/wdl"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream",
	Long: `Print one token per line as "line:col KIND lexeme", ending with EOF.
Input that does not lex is shown as INVALID rather than rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, src, err := readSource(cmd, args[0])
		if err != nil {
			return err
		}
		toks := wdl.Tokenize(src)
		invalid := 0
		out := cmd.OutOrStdout()
		for _, tok := range toks {
			if tok.Type == wdl.TokenInvalid {
				invalid++
			}
			lexeme := strings.ReplaceAll(src[tok.Offset:tok.End], "\n", `\n`)
			fmt.Fprintf(out, "%-7s %-8s %s\n", tok.Pos, tokenKind(tok.Type), lexeme)
		}
		log.Debug(log.CatLexer, "tokenized", "name", name, "tokens", len(toks), "invalid", invalid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func tokenKind(t wdl.TokenType) string {
	switch {
	case t.IsKeyword():
		return "KEYWORD"
	case t == wdl.TokenString:
		return "STRING"
	case t == wdl.TokenNumber:
		return "NUMBER"
	case t == wdl.TokenInvalid:
		return "INVALID"
	case t == wdl.TokenEOF:
		return "EOF"
	default:
		return "PUNCT"
	}
}
