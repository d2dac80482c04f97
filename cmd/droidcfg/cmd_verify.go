package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/iwmh/droidcfg/internal/domain-adapters/gateways"
	"github.com/iwmh/droidcfg/internal/domain/entities"
	"github.com/spf13/cobra"
)

type verifyOptions struct {
	checksumFile string
	gpgSig       string
	gpgKey       string
	gpgKeysURL   string
	all          bool
}

func newVerifyCmd(_ *app) *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify checksums and signatures of a built APK or app bundle",
		Args:  cobra.ExactArgs(1),
		Example: `  # Verify checksum
  droidcfg verify app-release.aab --checksum app-release.aab.sha256

  # Verify GPG signature with a local public key
  droidcfg verify app-release.aab --gpg-sig app-release.aab.asc --gpg-key release.pub

  # Verify every sidecar found next to the file
  droidcfg verify app-release.aab --all --gpg-keys-url https://example.com/KEYS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeVerify(cmd.Context(), cmd.OutOrStdout(), gateways.NewBundleVerifier(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.checksumFile, "checksum", "", "Checksum file to verify against (.sha256)")
	cmd.Flags().StringVar(&opts.gpgSig, "gpg-sig", "", "Detached GPG signature file (.asc or binary)")
	cmd.Flags().StringVar(&opts.gpgKey, "gpg-key", "", "Public key file to verify with")
	cmd.Flags().StringVar(&opts.gpgKeysURL, "gpg-keys-url", "", "URL to a KEYS file for GPG verification")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Verify all available sidecars automatically")

	return cmd
}

func executeVerify(ctx context.Context, w io.Writer, verifier *gateways.BundleVerifier, filePath string, opts *verifyOptions) error {
	verified := 0
	failed := 0

	// Auto-detect sidecars if --all is specified
	if opts.all {
		checksum, signature := gateways.NewArtifactFinder().Sidecars(filePath)
		if opts.checksumFile == "" {
			opts.checksumFile = checksum
		}
		if opts.gpgSig == "" {
			opts.gpgSig = signature
		}
	}

	fmt.Fprintf(w, "🔍 Verifying %s\n\n", filepath.Base(filePath))

	if opts.checksumFile != "" {
		fmt.Fprintf(w, "📋 Verifying checksum...\n")
		if err := verifier.VerifyChecksumFile(ctx, filePath, opts.checksumFile); err != nil {
			fmt.Fprintf(w, "%s Checksum verification FAILED: %v\n\n", failMark("❌"), err)
			failed++
		} else {
			fmt.Fprintf(w, "%s Checksum verified\n\n", okMark("✅"))
			verified++
		}
	}

	if opts.gpgSig != "" {
		fmt.Fprintf(w, "🔐 Verifying GPG signature...\n")
		signed, err := verifySignature(ctx, verifier, filePath, opts)
		if err != nil {
			fmt.Fprintf(w, "%s GPG signature verification FAILED: %v\n\n", failMark("❌"), err)
			failed++
		} else {
			fmt.Fprintf(w, "%s GPG signature verified\n", okMark("✅"))
			fmt.Fprintf(w, "   Key: %s\n", signed.KeyID)
			if signed.Signer != "" {
				fmt.Fprintf(w, "   Signer: %s\n", signed.Signer)
			}
			fmt.Fprintf(w, "   Signed: %s\n\n", signed.SignedAt.UTC().Format(time.RFC3339))
			verified++
		}
	}

	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "%s Verified: %d checks\n", okMark("✅"), verified)
	if failed > 0 {
		fmt.Fprintf(w, "%s Failed: %d checks\n", failMark("❌"), failed)
	}
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if failed > 0 {
		return fmt.Errorf("%d verification checks failed", failed)
	}
	if verified == 0 {
		return errors.New("no verification checks performed (specify --checksum, --gpg-sig or --all)")
	}
	return nil
}

func verifySignature(ctx context.Context, verifier *gateways.BundleVerifier, filePath string, opts *verifyOptions) (entities.BundleSignature, error) {
	if opts.gpgKey != "" {
		if _, err := verifier.ImportKeyFromFile(opts.gpgKey); err != nil {
			return entities.BundleSignature{}, err
		}
	}
	if opts.gpgKeysURL != "" {
		if _, err := verifier.ImportKeysFromURL(ctx, opts.gpgKeysURL); err != nil {
			return entities.BundleSignature{}, err
		}
	}

	if verifier.KeyringSize() == 0 {
		return entities.BundleSignature{}, errors.New("no GPG keys imported for verification (use --gpg-key or --gpg-keys-url)")
	}

	return verifier.VerifySignatureFromFile(filePath, opts.gpgSig)
}
