package campaign

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/captain-sol/voyage-client/pkg/ipfs"
	"github.com/captain-sol/voyage-client/pkg/metrics"
	"github.com/captain-sol/voyage-client/pkg/voyage/common"
)

// Draft is campaign metadata before publishing. BannerImageData, when set,
// is uploaded and replaces BannerImage with its gateway URL.
type Draft struct {
	Metadata

	BannerImageData []byte
}

// Publisher uploads campaign metadata to the off-chain store.
type Publisher struct {
	log        *logrus.Entry
	store      ipfs.Store
	gatewayURL func(cid string) string
}

// NewPublisher returns a Publisher that links uploaded banners with
// gatewayURL.
func NewPublisher(store ipfs.Store, gatewayURL func(cid string) string) *Publisher {
	return &Publisher{
		log:        logrus.StandardLogger().WithField("type", "voyage/campaign/publisher"),
		store:      store,
		gatewayURL: gatewayURL,
	}
}

// Publish uploads the draft and returns the CID to store as the campaign's
// ipfs hash. Questions without an id are assigned one, and each quiz is
// sealed with the hash of its correct answers before upload.
func (p *Publisher) Publish(ctx context.Context, draft *Draft) (cid string, err error) {
	tracer := metrics.TraceMethodCall(ctx, "voyage.campaign.publisher", "Publish")
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	metadata, err := p.prepare(draft)
	if err != nil {
		return "", err
	}

	if len(draft.BannerImageData) > 0 {
		imageCID, err := p.store.UploadBytes(ctx, draft.BannerImageData)
		if err != nil {
			return "", errors.Wrap(err, "error uploading banner image")
		}
		metadata.BannerImage = p.gatewayURL(imageCID)
	} else if !strings.HasPrefix(metadata.BannerImage, "http") {
		return "", common.NewValidationError("banner image", "must be an http url or image data")
	}

	cid, err = p.store.UploadJSON(ctx, metadata)
	if err != nil {
		return "", errors.Wrap(err, "error uploading campaign metadata")
	}
	if _, err := validateIpfsHash(cid); err != nil {
		return "", errors.Wrapf(err, "store returned an unusable cid %q", cid)
	}

	p.log.WithField("cid", cid).Debug("published campaign metadata")
	return cid, nil
}

func (p *Publisher) prepare(draft *Draft) (*Metadata, error) {
	if draft == nil {
		return nil, common.NewValidationError("campaign", "is required")
	}
	if len(strings.TrimSpace(draft.Title)) == 0 {
		return nil, common.NewValidationError("title", "is required")
	}
	if len(strings.TrimSpace(draft.Description)) == 0 {
		return nil, common.NewValidationError("description", "is required")
	}
	if len(draft.Modules) == 0 {
		return nil, common.NewValidationError("modules", "at least one module is required")
	}
	if len(draft.Modules) > 255 {
		return nil, common.NewValidationError("modules", "at most 255 modules are supported")
	}

	metadata := &Metadata{
		Title:       draft.Title,
		Description: draft.Description,
		BannerImage: draft.BannerImage,
		Modules:     make([]ModuleMetadata, len(draft.Modules)),
	}
	for i, module := range draft.Modules {
		if len(strings.TrimSpace(module.Title)) == 0 || len(strings.TrimSpace(module.Description)) == 0 {
			return nil, common.NewValidationError("module", "%d is missing a title or description", i)
		}

		// Module ids follow their position.
		module.Id = uint8(i)

		if module.Quiz != nil {
			quiz, err := prepareQuiz(i, module.Quiz)
			if err != nil {
				return nil, err
			}
			module.Quiz = quiz
		}
		metadata.Modules[i] = module
	}
	return metadata, nil
}

func prepareQuiz(moduleIndex int, quiz *Quiz) (*Quiz, error) {
	if len(quiz.Questions) == 0 {
		return nil, nil
	}

	prepared := &Quiz{Questions: make([]QuizQuestion, len(quiz.Questions))}
	for i, question := range quiz.Questions {
		if len(question.Options) == 0 {
			return nil, common.NewValidationError("quiz", "module %d question %d has no options", moduleIndex, i)
		}
		if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Options) {
			return nil, common.NewValidationError("quiz", "module %d question %d answer is out of range", moduleIndex, i)
		}
		if len(question.Id) == 0 {
			question.Id = uuid.NewString()
		}
		question.Options = append([]string(nil), question.Options...)
		prepared.Questions[i] = question
	}
	prepared.Seal()
	return prepared, nil
}
