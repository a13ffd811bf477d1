package inspect

import (
	"encoding/hex"
	"fmt"
	"os"

	bin "github.com/gagliardetto/binary"
	"github.com/spf13/cobra"
	"github.com/vermeil-labs/vermeil/pkg/accounts"
	"github.com/vermeil-labs/vermeil/pkg/base58"
	"github.com/vermeil-labs/vermeil/pkg/sealevel"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "inspect",
		Short: "Decode token instructions and account records",
		Run:   run,
	}

	instructionHex string
	recordPath     string
	accountPath    string
)

func init() {
	Cmd.Flags().StringVarP(&instructionHex, "instruction", "i", "", "Hex-encoded instruction bytes to decode")
	Cmd.Flags().StringVarP(&recordPath, "record", "r", "", "Path of an account record to decode")
	Cmd.Flags().StringVarP(&accountPath, "account", "a", "", "Path of a serialized host account to decode")
}

func run(c *cobra.Command, _ []string) {
	if instructionHex == "" && recordPath == "" && accountPath == "" {
		klog.Exit("nothing to do; pass --instruction, --record or --account")
	}

	if instructionHex != "" {
		data, err := hex.DecodeString(instructionHex)
		if err != nil {
			klog.Exitf("malformed instruction hex: %s", err)
		}
		err = printInstruction(data)
		if err != nil {
			klog.Exitf("failed to decode instruction: %s", err)
		}
	}

	if recordPath != "" {
		data, err := os.ReadFile(recordPath)
		if err != nil {
			klog.Exitf("failed to read record: %s", err)
		}
		err = printRecord(data)
		if err != nil {
			klog.Exitf("failed to decode record: %s", err)
		}
	}

	if accountPath != "" {
		data, err := os.ReadFile(accountPath)
		if err != nil {
			klog.Exitf("failed to read account: %s", err)
		}
		err = printAccount(data)
		if err != nil {
			klog.Exitf("failed to decode account: %s", err)
		}
	}
}

func printAccount(data []byte) error {
	var acct accounts.Account
	err := acct.UnmarshalWithDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return err
	}

	fmt.Printf("Account: lamports=%d, owner=%s, executable=%t, rent_epoch=%d, data_len=%d\n",
		acct.Lamports, base58.EncodeToString(acct.Owner[:]), acct.Executable, acct.RentEpoch, len(acct.Data))

	if len(acct.Data) == 0 {
		return nil
	}
	return printRecord(acct.Data)
}

func printInstruction(data []byte) error {
	decoder := bin.NewBinDecoder(data)

	instructionType, err := decoder.ReadByte()
	if err != nil {
		return err
	}

	switch instructionType {
	case sealevel.TokenProgramInstrTypeInitializeMint, sealevel.TokenProgramInstrTypeInitializeMint2:
		var initializeMint sealevel.TokenInstrInitializeMint
		err = initializeMint.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		name := "InitializeMint"
		if instructionType == sealevel.TokenProgramInstrTypeInitializeMint2 {
			name = "InitializeMint2"
		}
		fmt.Printf("%s: decimals=%d, mint_authority=%s", name, initializeMint.Decimals, initializeMint.MintAuthority)
		if initializeMint.FreezeAuthority != nil {
			fmt.Printf(", freeze_authority=%s", *initializeMint.FreezeAuthority)
		}
		fmt.Println()

	case sealevel.TokenProgramInstrTypeInitializeAccount:
		fmt.Println("InitializeAccount")

	case sealevel.TokenProgramInstrTypeInitializeMultisig, sealevel.TokenProgramInstrTypeInitializeMultisig2:
		var initializeMultisig sealevel.TokenInstrInitializeMultisig
		err = initializeMultisig.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		name := "InitializeMultisig"
		if instructionType == sealevel.TokenProgramInstrTypeInitializeMultisig2 {
			name = "InitializeMultisig2"
		}
		fmt.Printf("%s: m=%d\n", name, initializeMultisig.M)

	case sealevel.TokenProgramInstrTypeTransfer:
		var transfer sealevel.TokenInstrTransfer
		err = transfer.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("Transfer: amount=%d\n", transfer.Amount)

	case sealevel.TokenProgramInstrTypeApprove:
		var approve sealevel.TokenInstrApprove
		err = approve.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("Approve: amount=%d\n", approve.Amount)

	case sealevel.TokenProgramInstrTypeRevoke:
		fmt.Println("Revoke")

	case sealevel.TokenProgramInstrTypeSetAuthority:
		var setAuthority sealevel.TokenInstrSetAuthority
		err = setAuthority.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("SetAuthority: authority_type=%d", setAuthority.AuthorityType)
		if setAuthority.NewAuthority != nil {
			fmt.Printf(", new_authority=%s", *setAuthority.NewAuthority)
		}
		fmt.Println()

	case sealevel.TokenProgramInstrTypeMintTo:
		var mintTo sealevel.TokenInstrMintTo
		err = mintTo.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("MintTo: amount=%d\n", mintTo.Amount)

	case sealevel.TokenProgramInstrTypeBurn:
		var burn sealevel.TokenInstrBurn
		err = burn.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("Burn: amount=%d\n", burn.Amount)

	case sealevel.TokenProgramInstrTypeCloseAccount:
		fmt.Println("CloseAccount")

	case sealevel.TokenProgramInstrTypeInitializeAccount2:
		var initializeAccount2 sealevel.TokenInstrInitializeAccount2
		err = initializeAccount2.UnmarshalWithDecoder(decoder)
		if err != nil {
			return err
		}
		fmt.Printf("InitializeAccount2: owner=%s\n", initializeAccount2.Owner)

	default:
		return fmt.Errorf("unknown instruction tag %d", instructionType)
	}

	return nil
}

func printRecord(data []byte) error {
	switch len(data) {
	case sealevel.TokenMintSize:
		var mint sealevel.TokenMint
		err := mint.UnmarshalWithDecoder(bin.NewBinDecoder(data))
		if err != nil {
			return err
		}
		fmt.Printf("Mint: supply=%d, decimals=%d, initialized=%t", mint.Supply, mint.Decimals, mint.IsInitialized)
		if mint.MintAuthority != nil {
			fmt.Printf(", mint_authority=%s", *mint.MintAuthority)
		}
		if mint.FreezeAuthority != nil {
			fmt.Printf(", freeze_authority=%s", *mint.FreezeAuthority)
		}
		fmt.Println()

	case sealevel.TokenAccountSize:
		var tokenAcct sealevel.TokenAccount
		err := tokenAcct.UnmarshalWithDecoder(bin.NewBinDecoder(data))
		if err != nil {
			return err
		}
		fmt.Printf("TokenAccount: mint=%s, owner=%s, amount=%d, state=%d", tokenAcct.Mint, tokenAcct.Owner, tokenAcct.Amount, tokenAcct.State)
		if tokenAcct.Delegate != nil {
			fmt.Printf(", delegate=%s, delegated_amount=%d", *tokenAcct.Delegate, tokenAcct.DelegatedAmount)
		}
		if tokenAcct.IsNative != nil {
			fmt.Printf(", native_reserve=%d", *tokenAcct.IsNative)
		}
		if tokenAcct.CloseAuthority != nil {
			fmt.Printf(", close_authority=%s", *tokenAcct.CloseAuthority)
		}
		fmt.Println()

	case sealevel.TokenMultisigSize:
		var multisig sealevel.TokenMultisig
		err := multisig.UnmarshalWithDecoder(bin.NewBinDecoder(data))
		if err != nil {
			return err
		}
		fmt.Printf("Multisig: m=%d, n=%d, initialized=%t, signers=[", multisig.M, multisig.N, multisig.IsInitialized)
		for idx := byte(0); idx < multisig.N; idx++ {
			if idx > 0 {
				fmt.Print(", ")
			}
			fmt.Print(multisig.Signers[idx])
		}
		fmt.Println("]")

	default:
		return fmt.Errorf("record length %d matches no known layout", len(data))
	}

	return nil
}
