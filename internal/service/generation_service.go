package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/pkg/storage"
	"go.uber.org/zap"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

type GenerationService struct {
	subscriptionRepo SubscriptionStore
	projectRepo      ProjectStore
	inputStorage     storage.BlobStorage
	outputStorage    storage.BlobStorage
	generator        ImageGenerator
	httpClient       *http.Client
	logger           *zap.Logger
}

func NewGenerationService(
	subscriptionRepo SubscriptionStore,
	projectRepo ProjectStore,
	inputStorage storage.BlobStorage,
	outputStorage storage.BlobStorage,
	generator ImageGenerator,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		subscriptionRepo: subscriptionRepo,
		projectRepo:      projectRepo,
		inputStorage:     inputStorage,
		outputStorage:    outputStorage,
		generator:        generator,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: logger,
	}
}

// Generate, üretim akışını sıralar: kota kapısı → input upload → model
// çağrısı → output indirme ve upload → proje kaydı → kota artışı.
// Kapı her zaman ilk adımdır; reddedilen istek hiçbir ücretli dış çağrı
// yapmaz. Proje kaydı ve kota artışı hataları loglanır ama kullanıcıya
// dönmez, üretilen görsel o noktada zaten teslim edilmiştir.
func (s *GenerationService) Generate(userID uint, files []*multipart.FileHeader, prompt string) (*models.GenerationResult, error) {
	if len(files) == 0 || prompt == "" {
		return nil, ErrInvalidInput
	}

	// Kota kontrolü
	sub, err := s.subscriptionRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := CanGenerate(sub); err != nil {
		return nil, err
	}

	// Dosya tipini ve boyutunu yüklemeye başlamadan önce kontrol et
	for _, file := range files {
		if file.Size > maxImageSize {
			return nil, fmt.Errorf("%w: %s is too large", ErrInvalidInput, file.Filename)
		}
		if !isValidImageType(file.Header.Get("Content-Type")) {
			return nil, fmt.Errorf("%w: %s has an unsupported type", ErrInvalidInput, file.Filename)
		}
	}

	// Input görsellerini yükle
	now := time.Now().UnixMilli()
	inputURLs := make([]string, 0, len(files))
	inputKeys := make([]string, 0, len(files))

	for i, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		key := fmt.Sprintf("%d-%d-%s", now, i, file.Filename)
		err = s.inputStorage.Upload(key, src, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		inputURLs = append(inputURLs, s.inputStorage.PublicURL(key))
		inputKeys = append(inputKeys, key)
	}

	// Model tek conditioning görseli kabul ediyor: ilk görsel referans,
	// fazlası prompt'a not düşülür.
	primaryURL := inputURLs[0]
	finalPrompt := prompt
	if len(files) > 1 {
		finalPrompt = fmt.Sprintf("%s (composed from %d reference images, first image is the primary reference)", prompt, len(files))
	}

	output, err := s.generator.Generate(primaryURL, finalPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	generatedURL, err := normalizeModelOutput(output)
	if err != nil {
		return nil, err
	}

	// Üretilen görseli indir ve output bucket'a yükle
	imageBytes, err := s.fetchImage(generatedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	outputKey := fmt.Sprintf("output-%d-%s.png", time.Now().UnixMilli(), uuid.NewString())
	if err := s.outputStorage.Upload(outputKey, imageBytes, "image/png"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	outputURL := s.outputStorage.PublicURL(outputKey)

	// Proje kaydı; başarısızlık üretimi geri almaz
	var projectID *uint
	project := &models.Project{
		UserID:         userID,
		InputImageURL:  primaryURL,
		OutputImageURL: outputURL,
		InputKey:       inputKeys[0],
		OutputKey:      outputKey,
		Prompt:         finalPrompt,
		Status:         models.ProjectStatusCompleted,
	}
	if err := s.projectRepo.Create(project); err != nil {
		s.logger.Error("failed to persist project after successful generation",
			zap.Uint("user_id", userID),
			zap.String("output_key", outputKey),
			zap.Error(err),
		)
	} else {
		projectID = &project.ID
	}

	// Kota artışı sunucu tarafında atomiktir; hata loglanır, üretim
	// kullanıcıya teslim edilmiştir
	if err := s.subscriptionRepo.IncrementQuotaUsed(userID); err != nil {
		s.logger.Error("failed to increment quota after successful generation",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}

	return &models.GenerationResult{
		InputImageURLs: inputURLs,
		PrimaryURL:     primaryURL,
		OutputImageURL: outputURL,
		Prompt:         finalPrompt,
		ProjectID:      projectID,
	}, nil
}

// normalizeModelOutput, model çıktısını tek URL'e indirger. Tek string ya
// da boş olmayan string listesi kabul edilir, diğer her şekil fataldir.
func normalizeModelOutput(raw json.RawMessage) (string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
		return list[0], nil
	}

	return "", ErrUnexpectedUpstreamFormat
}

func (s *GenerationService) fetchImage(url string) (io.Reader, error) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(body), nil
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
