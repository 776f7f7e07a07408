package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-chain-decoder/internal/config"
	"github.com/lugondev/go-chain-decoder/pkg/decoder"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/factory"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

var decodeProtocol string

// fixtureTransaction mirrors types.RawTransaction with JSON-friendly
// substitutes for the fields that don't round-trip through encoding/json:
// Err as a plain string and BlockTime as a Unix timestamp.
type fixtureTransaction struct {
	Instructions      []types.CompiledInstruction `json:"instructions"`
	AccountKeys       []types.Pubkey               `json:"account_keys"`
	LoadedAddresses   types.LoadedAddresses        `json:"loaded_addresses"`
	Err               string                       `json:"err,omitempty"`
	InnerInstructions []types.InnerInstructions    `json:"inner_instructions,omitempty"`
	LogMessages       []string                     `json:"log_messages,omitempty"`
	Slot              *uint64                      `json:"slot,omitempty"`
	BlockTimeUnix     *int64                       `json:"block_time_unix,omitempty"`
}

func (f *fixtureTransaction) toRawTransaction() *types.RawTransaction {
	tx := &types.RawTransaction{
		Instructions:      f.Instructions,
		AccountKeys:       f.AccountKeys,
		LoadedAddresses:   f.LoadedAddresses,
		InnerInstructions: f.InnerInstructions,
		LogMessages:       f.LogMessages,
		Slot:              f.Slot,
	}
	if f.Err != "" {
		tx.Err = fmt.Errorf("%s", f.Err)
	}
	if f.BlockTimeUnix != nil {
		t := time.Unix(*f.BlockTimeUnix, 0).UTC()
		tx.BlockTime = &t
	}
	return tx
}

var decodeCmd = &cobra.Command{
	Use:   "decode [fixture.json]",
	Short: "Decode a raw transaction fixture into its typed event list",
	Long: `Decode reads a JSON transaction fixture (the fixtureTransaction shape:
instructions, account_keys, inner_instructions, log_messages) and prints the
events the configured protocol decoder(s) produce for it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading fixture: %w", err)
		}

		var fixture fixtureTransaction
		if err := json.Unmarshal(raw, &fixture); err != nil {
			return fmt.Errorf("parsing fixture: %w", err)
		}
		tx := fixture.toRawTransaction()

		appCfg := config.DefaultConfig()
		protocols := []string{decodeProtocol}
		if decodeProtocol == "" {
			protocols = appCfg.Decoder.ResolvedProtocols()
		}

		tags := make([]event.Protocol, 0, len(protocols))
		for _, p := range protocols {
			tags = append(tags, event.Protocol(p))
		}

		d, err := factory.CreateMulti(tags)
		if err != nil {
			return err
		}

		var decodeCfg decoder.Configuration
		if appCfg.Decoder.BotWallet != "" {
			bot, err := solana.PublicKeyFromBase58(appCfg.Decoder.BotWallet)
			if err != nil {
				return fmt.Errorf("parsing bot_wallet: %w", err)
			}
			decodeCfg.BotWallet = &bot
		}

		events, err := d.ParseTransaction(tx, "fixture", time.Now().UnixMilli(), decodeCfg)
		if err != nil {
			return err
		}

		for _, ev := range events {
			header := ev.Header()
			fmt.Printf("%-6s %-12s id=%-40s index=%s dev=%-5t bot=%-5t\n",
				header.Protocol, ev.EventKind(), ev.ID(), header.Index, header.IsDevCreateTokenTrade, header.IsBot)
		}
		return nil
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeProtocol, "protocol", "", "restrict decoding to one protocol (pumpfun, pumpswap, bonk); default decodes all three")
	rootCmd.AddCommand(decodeCmd)
}
