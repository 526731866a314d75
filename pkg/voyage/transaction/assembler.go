package transaction

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/metrics"
	"github.com/captain-sol/voyage-client/pkg/solana"
	"github.com/captain-sol/voyage-client/pkg/solana/computebudget"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

const (
	metricsStructName = "voyage.transaction.assembler"

	submittedEventName  = "VoyageTransactionSubmitted"
	signerLatencyMetric = "Transaction_SignerLatency"
)

var (
	ErrNoInstructions = errors.New("no instructions to submit")
	ErrNotConnected   = errors.New("wallet is not connected")
	ErrCannotSign     = errors.New("wallet cannot sign transactions")
)

// Assembler packages instructions into a transaction paid for by the
// session's wallet and hands it to the session's signer.
type Assembler struct {
	log    *logrus.Entry
	client solana.Client

	computeUnitLimit uint32
	computeUnitPrice uint64
}

func NewAssembler(client solana.Client) *Assembler {
	return &Assembler{
		log:    logrus.StandardLogger().WithField("type", "voyage/transaction/assembler"),
		client: client,
	}
}

// WithComputeBudget prefixes built transactions with compute budget
// instructions. A zero limit or price omits the corresponding instruction.
func (a *Assembler) WithComputeBudget(unitLimit uint32, microLamportsPerUnit uint64) *Assembler {
	a.computeUnitLimit = unitLimit
	a.computeUnitPrice = microLamportsPerUnit
	return a
}

// Build returns the unsigned transaction for instructions with the latest
// blockhash set.
func (a *Assembler) Build(session *common.WalletSession, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if !session.IsConnected() {
		return nil, ErrNotConnected
	}
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}

	txn := solana.NewTransaction(session.Address, a.withComputeBudget(instructions)...)
	if size := len(txn.Marshal()); size > solana.MaxTransactionSize {
		return nil, errors.Errorf("transaction size %d exceeds the %d byte limit", size, solana.MaxTransactionSize)
	}

	blockhash, err := a.client.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(err, "error getting latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	return &txn, nil
}

// Submit signs and sends instructions as one transaction. It returns once the
// signer accepts the transaction. There are no retries and confirmation is
// not awaited. Every failure is a *common.SubmissionError.
func (a *Assembler) Submit(ctx context.Context, session *common.WalletSession, action string, instructions ...solana.Instruction) (sig solana.Signature, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Submit")
	tracer.AddAttribute("action", action)
	tracer.AddAttribute("instructions", len(instructions))
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	if !session.CanSign() {
		if !session.IsConnected() {
			return sig, common.NewSubmissionError(action, ErrNotConnected)
		}
		return sig, common.NewSubmissionError(action, ErrCannotSign)
	}
	tracer.AddAccount("payer", session.Address)

	txn, err := a.Build(session, instructions...)
	if err != nil {
		return sig, common.NewSubmissionError(action, err)
	}

	log := a.log.WithFields(logrus.Fields{
		"method":  "Submit",
		"action":  action,
		"session": session.String(),
	})

	start := time.Now()
	sig, err = session.Signer.SignAndSend(ctx, txn)
	metrics.RecordDuration(ctx, signerLatencyMetric, time.Since(start))
	if err != nil {
		log.WithError(err).Warn("failure submitting transaction")
		return solana.Signature{}, common.NewSubmissionError(action, err)
	}

	metrics.RecordEvent(ctx, submittedEventName, map[string]interface{}{
		"action":       action,
		"cluster":      session.Cluster,
		"instructions": len(instructions),
	})

	log.WithField("signature", sig.String()).Debug("submitted transaction")
	return sig, nil
}

func (a *Assembler) withComputeBudget(instructions []solana.Instruction) []solana.Instruction {
	var prefix []solana.Instruction
	if a.computeUnitLimit > 0 {
		prefix = append(prefix, computebudget.SetComputeUnitLimit(a.computeUnitLimit))
	}
	if a.computeUnitPrice > 0 {
		prefix = append(prefix, computebudget.SetComputeUnitPrice(a.computeUnitPrice))
	}
	if len(prefix) == 0 {
		return instructions
	}

	for _, ix := range instructions {
		if computebudget.IsComputeBudgetInstruction(ix) {
			// The caller already set a budget.
			return instructions
		}
	}
	return append(prefix, instructions...)
}
