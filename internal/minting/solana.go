package minting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/dmitrijs2005/certmint/internal/logging"
)

// Metaplex on-chain field limits.
const (
	maxNameLen   = 32
	tokenSymbol  = "CERT"
	sellerFeeBps = 0
)

var ErrNoSigningAccount = errors.New("no signing account available")

// Signer provides the keypair that pays for and authorizes the mint.
// The connected wallet session implements it.
type Signer interface {
	Account() (types.Account, bool)
}

// SolanaMinter mints a certificate as a one-of-one NFT: a fresh mint account
// with decimals 0, a Metaplex metadata account pointing at the uploaded
// metadata document, one token minted to the owner's associated token
// account, and a master edition capping the supply at 1.
type SolanaMinter struct {
	rpc          *client.Client
	signer       Signer
	assets       AssetStore
	explorerBase string
	log          logging.Logger
}

func NewSolanaMinter(rpcURL string, signer Signer, assets AssetStore, explorerBase string, log logging.Logger) *SolanaMinter {
	return &SolanaMinter{
		rpc:          client.NewClient(rpcURL),
		signer:       signer,
		assets:       assets,
		explorerBase: explorerBase,
		log:          log,
	}
}

// metadataDocument is the off-chain token metadata JSON (Metaplex standard).
type metadataDocument struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []attribute `json:"attributes"`
}

type attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

func buildMetadataDocument(meta Metadata, imageURL string) metadataDocument {
	attrs := []attribute{
		{TraitType: "certificate_id", Value: meta.CertificateID},
		{TraitType: "issued_at", Value: meta.IssuedAt.Format("2006-01-02T15:04:05Z07:00")},
	}
	if meta.Edited {
		attrs = append(attrs, attribute{
			TraitType: "last_updated", Value: meta.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return metadataDocument{
		Name:        onChainName(meta.Title),
		Symbol:      tokenSymbol,
		Description: meta.Description,
		Image:       imageURL,
		Attributes:  attrs,
	}
}

// onChainName fits the title into the Metaplex 32-byte name field,
// truncating with an ellipsis (3 bytes in UTF-8) when necessary. The cut
// never lands inside a multi-byte rune, so the result stays valid UTF-8.
func onChainName(title string) string {
	if len(title) <= maxNameLen {
		return title
	}
	cut := maxNameLen - len("…")
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut] + "…"
}

func (m *SolanaMinter) Submit(ctx context.Context, meta Metadata, image []byte) (*Receipt, error) {
	authority, ok := m.signer.Account()
	if !ok {
		return nil, ErrNoSigningAccount
	}

	key := RandomStorageKey()

	imageURL, err := m.assets.Put(ctx, key+".png", "image/png", image)
	if err != nil {
		return nil, fmt.Errorf("uploading snapshot: %w", err)
	}

	doc, err := json.Marshal(buildMetadataDocument(meta, imageURL))
	if err != nil {
		return nil, fmt.Errorf("marshalling metadata document: %w", err)
	}
	metadataURL, err := m.assets.Put(ctx, key+".json", "application/json", doc)
	if err != nil {
		return nil, fmt.Errorf("uploading metadata document: %w", err)
	}

	mintAddr, sig, err := m.mintToOwner(ctx, authority, meta, metadataURL)
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "certificate minted",
		"certificate_id", meta.CertificateID, "mint", mintAddr, "signature", sig)

	return &Receipt{
		MintAddress: mintAddr,
		Signature:   sig,
		ExplorerURL: m.explorerTxURL(sig),
		ImageURL:    imageURL,
		MetadataURL: metadataURL,
	}, nil
}

func (m *SolanaMinter) mintToOwner(ctx context.Context, authority types.Account, meta Metadata, metadataURL string) (string, string, error) {
	owner := common.PublicKeyFromString(meta.Owner)
	mint := types.NewAccount()

	ata, _, err := common.FindAssociatedTokenAddress(owner, mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("FindAssociatedTokenAddress: %w", err)
	}

	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("GetTokenMetaPubkey: %w", err)
	}
	masterEditionPubkey, err := token_metadata.GetMasterEdition(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("GetMasterEdition: %w", err)
	}

	mintRent, err := m.rpc.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return "", "", fmt.Errorf("GetMinimumBalanceForRentExemption: %w", err)
	}

	recent, err := m.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", "", fmt.Errorf("GetLatestBlockhash: %w", err)
	}

	// One certificate, one token.
	maxSupply := uint64(1)

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, authority},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        authority.PublicKey,
			RecentBlockhash: recent.Blockhash,
			Instructions: []types.Instruction{
				system.CreateAccount(system.CreateAccountParam{
					From:     authority.PublicKey,
					New:      mint.PublicKey,
					Owner:    common.TokenProgramID,
					Lamports: mintRent,
					Space:    token.MintAccountSize,
				}),
				token.InitializeMint(token.InitializeMintParam{
					Decimals:   0,
					Mint:       mint.PublicKey,
					MintAuth:   authority.PublicKey,
					FreezeAuth: &authority.PublicKey,
				}),
				token_metadata.CreateMetadataAccountV3(
					token_metadata.CreateMetadataAccountV3Param{
						Metadata:                metadataPubkey,
						Mint:                    mint.PublicKey,
						MintAuthority:           authority.PublicKey,
						UpdateAuthority:         authority.PublicKey,
						Payer:                   authority.PublicKey,
						UpdateAuthorityIsSigner: true,
						IsMutable:               true,
						Data: token_metadata.DataV2{
							Name:                 onChainName(meta.Title),
							Symbol:               tokenSymbol,
							Uri:                  metadataURL,
							SellerFeeBasisPoints: sellerFeeBps,
							Creators: &[]token_metadata.Creator{
								{
									Address:  authority.PublicKey,
									Verified: true,
									Share:    100,
								},
							},
						},
						CollectionDetails: nil,
					},
				),
				associated_token_account.CreateAssociatedTokenAccount(
					associated_token_account.CreateAssociatedTokenAccountParam{
						Funder:                 authority.PublicKey,
						Owner:                  owner,
						Mint:                   mint.PublicKey,
						AssociatedTokenAccount: ata,
					},
				),
				token.MintTo(token.MintToParam{
					Mint:   mint.PublicKey,
					To:     ata,
					Auth:   authority.PublicKey,
					Amount: 1,
				}),
				token_metadata.CreateMasterEditionV3(
					token_metadata.CreateMasterEditionParam{
						Edition:         masterEditionPubkey,
						Mint:            mint.PublicKey,
						UpdateAuthority: authority.PublicKey,
						MintAuthority:   authority.PublicKey,
						Metadata:        metadataPubkey,
						Payer:           authority.PublicKey,
						MaxSupply:       &maxSupply,
					},
				),
			},
		}),
	})
	if err != nil {
		return "", "", fmt.Errorf("NewTransaction: %w", err)
	}

	sig, err := m.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return "", "", fmt.Errorf("SendTransaction: %w", err)
	}

	return mint.PublicKey.ToBase58(), sig, nil
}

func (m *SolanaMinter) explorerTxURL(signature string) string {
	return strings.TrimSuffix(m.explorerBase, "/") + "/tx/" + signature
}
