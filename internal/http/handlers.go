package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/credential-minter/internal/validate"
	"github.com/quantumauth-io/credential-minter/internal/wallet"
)

type Handler struct {
	credentials Credentials
	txs         Transactions
	docs        Documents
	networks    Networks
	wallet      Wallet
}

func NewHandler(credentials Credentials, txs Transactions, docs Documents, networks Networks, w Wallet) *Handler {
	return &Handler{
		credentials: credentials,
		txs:         txs,
		docs:        docs,
		networks:    networks,
		wallet:      w,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) sessionStatus() sessionRes {
	account := h.credentials.CurrentAccount()
	return sessionRes{
		Connected: account != "",
		Account:   account,
		ChainID:   h.credentials.ChainID(),
		State:     h.credentials.State().String(),
	}
}

// GET /api/session
func (h *Handler) SessionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionStatus())
}

// POST /api/session/connect
func (h *Handler) Connect(c *gin.Context) {
	var req connectReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
			return
		}
	}

	if _, err := h.credentials.Init(c.Request.Context(), req.ForceReconnect); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionStatus())
}

// POST /api/session/disconnect
func (h *Handler) Disconnect(c *gin.Context) {
	h.credentials.Disconnect()
	c.JSON(http.StatusOK, h.sessionStatus())
}

func (h *Handler) walletAccounts() walletAccountsRes {
	all, selected := h.wallet.Accounts()
	res := walletAccountsRes{Accounts: make([]string, 0, len(all))}
	for _, a := range all {
		res.Accounts = append(res.Accounts, a.Hex())
	}
	if selected != (common.Address{}) {
		res.Selected = selected.Hex()
	}
	return res
}

// GET /api/wallet/accounts
func (h *Handler) WalletAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.walletAccounts())
}

// POST /api/wallet/accounts
// An empty body or privateKey generates a new key.
func (h *Handler) AddWalletAccount(c *gin.Context) {
	var req addAccountReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
			return
		}
	}

	addr, err := h.wallet.AddAccount(req.PrivateKey)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addAccountRes{Address: addr.Hex()})
}

// POST /api/wallet/select
func (h *Handler) SelectWalletAccount(c *gin.Context) {
	var req selectAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
		return
	}
	if err := validate.Address(req.Address, "address"); err != nil {
		writeError(c, err)
		return
	}

	if err := h.wallet.SelectAccount(common.HexToAddress(req.Address)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.walletAccounts())
}

// POST /api/wallet/revoke
func (h *Handler) RevokeWallet(c *gin.Context) {
	h.wallet.Revoke()
	c.JSON(http.StatusOK, h.walletAccounts())
}

// GET /api/networks
func (h *Handler) Networks(c *gin.Context) {
	out := networksRes{Networks: []networkRes{}}
	for _, n := range h.networks.Networks() {
		out.Networks = append(out.Networks, networkRes{
			Name:       n.Name,
			ChainID:    n.ChainID,
			ChainIDHex: n.ChainIDHex,
			Explorer:   n.Explorer,
		})
	}
	if active, _, err := h.networks.Active(); err == nil {
		out.Active = active.NetworkName
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/networks/switch asks the wallet to move to another network. The session reloads when
// the wallet reports the change.
func (h *Handler) SwitchNetwork(c *gin.Context) {
	var req switchNetworkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
		return
	}
	if strings.TrimSpace(req.ChainID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorMissingChainText})
		return
	}

	params := wallet.SwitchChainParams{ChainID: strings.ToLower(strings.TrimSpace(req.ChainID))}
	if err := h.wallet.Request(c.Request.Context(), nil, "wallet_switchEthereumChain", params); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chainId": params.ChainID})
}

// POST /api/documents
func (h *Handler) UploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDocumentBytes+maxUploadOverheadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{JSONKeyError: HTTPErrorTooLargeText})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorMissingFileText})
		return
	}
	if fh.Size > MaxDocumentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{JSONKeyError: HTTPErrorTooLargeText})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentBytes+1))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(data) > MaxDocumentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{JSONKeyError: HTTPErrorTooLargeText})
		return
	}
	if !isPDF(data) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{JSONKeyError: HTTPErrorNotPDFText})
		return
	}

	hash, err := h.docs.Upload(c.Request.Context(), fh.Filename, MimePDF, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, documentRes{ContentHash: hash, URL: h.docs.GatewayURL(hash)})
}

// isPDF trusts the bytes, not the client supplied content type.
func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-")) && http.DetectContentType(data) == MimePDF
}

// GET /api/documents/:hash
func (h *Handler) DownloadDocument(c *gin.Context) {
	hash := c.Param("hash")
	data, err := h.docs.Retrieve(c.Request.Context(), hash)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// POST /api/credentials
func (h *Handler) MintCredential(c *gin.Context) {
	var req mintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
		return
	}

	receipt, err := h.credentials.MintCredential(c.Request.Context(), req.To, req.Title, req.Description, req.Issuer, req.ContentHash)
	if err != nil {
		writeError(c, err)
		return
	}

	res := receiptRes(receipt)
	if id, err := h.credentials.MintedTokenID(receipt); err != nil {
		log.Warn("minted token id unavailable", "tx", res.TxHash, "error", err)
	} else {
		res.TokenID = &id
	}
	c.JSON(http.StatusCreated, res)
}

func receiptRes(r *types.Receipt) txRes {
	res := txRes{TxHash: r.TxHash.Hex()}
	if r.BlockNumber != nil {
		res.BlockNumber = r.BlockNumber.Uint64()
	}
	return res
}

// GET /api/credentials/:id
func (h *Handler) GetCredential(c *gin.Context) {
	id, err := validate.ParseTokenID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	cred, err := h.credentials.GetCredential(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	res := credentialRes{
		TokenID:     cred.TokenID,
		Title:       cred.Title,
		Description: cred.Description,
		Issuer:      cred.Issuer,
		IssueDate:   cred.IssueDate,
		ContentHash: cred.ContentHash,
		IsRevoked:   cred.IsRevoked,
		URL:         h.docs.GatewayURL(cred.ContentHash),
	}
	if owner, err := h.credentials.OwnerOf(c.Request.Context(), id); err != nil {
		log.Warn("credential owner lookup failed", "token_id", id, "error", err)
	} else {
		res.Owner = owner
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/credentials/:id/revoke
func (h *Handler) RevokeCredential(c *gin.Context) {
	id, err := validate.ParseTokenID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req revokeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidJSONText})
		return
	}

	receipt, err := h.credentials.RevokeCredential(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receiptRes(receipt))
}

// GET /api/owners/:address/credentials
func (h *Handler) CredentialsByOwner(c *gin.Context) {
	owner := c.Param("address")
	ids, err := h.credentials.TokensByOwner(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownerCredentialsRes{Owner: strings.ToLower(owner), TokenIDs: ids})
}

// GET /api/transactions
func (h *Handler) Transactions(c *gin.Context) {
	c.JSON(http.StatusOK, transactionsRes{Transactions: h.txs.All()})
}

// GET /api/transactions/:hash
func (h *Handler) Transaction(c *gin.Context) {
	raw := c.Param("hash")
	if !isTxHash(raw) {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: HTTPErrorInvalidTxHash})
		return
	}
	status, ok := h.txs.Status(common.HexToHash(raw))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{JSONKeyError: HTTPErrorUnknownTxText})
		return
	}
	c.JSON(http.StatusOK, status)
}
