package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/boxity/boxity/internal/auth"
	"github.com/boxity/boxity/internal/crypto"
	"github.com/spf13/cobra"
)

var (
	keyFile  string
	keyForce bool
)

func init() {
	RootCmd.AddCommand(genMasterKeyCmd, hashTokenCmd)
	genMasterKeyCmd.Flags().StringVar(&keyFile, "out", crypto.MasterKeyFile, "key file to write")
	genMasterKeyCmd.Flags().BoolVar(&keyForce, "force", false, "overwrite an existing key file")
}

var genMasterKeyCmd = &cobra.Command{
	Use:   "genmasterkey",
	Short: "Generate the master key used to encrypt the batch slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if _, err := os.Stat(keyFile); err == nil && !keyForce {
			return fmt.Errorf("%s already exists, refusing to overwrite", keyFile)
		}
		err = os.WriteFile(keyFile, []byte(crypto.GenerateMasterKey()+"\n"), 0600)
		if err != nil {
			return fmt.Errorf("writing %s: %w", keyFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Master key written to %s\n", keyFile)
		return nil
	},
}

var hashTokenCmd = &cobra.Command{
	Use:   "hashtoken [token]",
	Short: "Print the bcrypt hash of an admin token, read from stdin when omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			token, err = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && token == "" {
				return fmt.Errorf("reading token: %w", err)
			}
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("token must not be empty")
		}

		hash, err := auth.HashToken(token)
		if err != nil {
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
