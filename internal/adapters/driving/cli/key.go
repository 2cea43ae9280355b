package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Verse key utilities",
	Long:  `Convert between "surah:ayah" verse keys and their sortable order form.`,
}

var keyToOrderCmd = &cobra.Command{
	Use:   "to-order [surah:ayah]",
	Short: "Convert a verse key to its order number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := domain.VerseKeyToOrder(args[0])
		if err != nil {
			return err
		}
		cmd.Println(order)
		return nil
	},
}

var keyToVerseCmd = &cobra.Command{
	Use:   "to-verse [order]",
	Short: "Convert an order number back to a verse key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: order %q is not a number", domain.ErrInvalidInput, args[0])
		}
		key := domain.OrderToVerseKey(order)
		cmd.Printf("%d:%d\n", key.Surah, key.Ayah)
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyToOrderCmd)
	keyCmd.AddCommand(keyToVerseCmd)
	rootCmd.AddCommand(keyCmd)
}
