package worker

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/AndrewDonelson/dance-card-orchestrator/config"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services/ai"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/audio"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/logger"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/lyrics"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/youtube"
)

// Processor runs the full song ingestion pipeline: fetch, download,
// transcribe or align, analyze structure, generate choreography, save.
type Processor struct {
	songRepo    *database.SongRepository
	lyricsRepo  *database.LyricsRepository
	routineRepo *database.RoutineRepository
	broadcaster *services.ProgressBroadcaster
	downloader  *youtube.Downloader
	aiClient    *ai.Client
	config      *config.Config
}

// NewProcessor creates a new processor
func NewProcessor(
	songRepo *database.SongRepository,
	lyricsRepo *database.LyricsRepository,
	routineRepo *database.RoutineRepository,
	broadcaster *services.ProgressBroadcaster,
	cfg *config.Config,
) *Processor {
	return &Processor{
		songRepo:    songRepo,
		lyricsRepo:  lyricsRepo,
		routineRepo: routineRepo,
		broadcaster: broadcaster,
		downloader:  youtube.NewDownloader(cfg.CachePath),
		aiClient:    ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel),
		config:      cfg,
	}
}

// Process executes the full song processing pipeline for a queue item
func (p *Processor) Process(item *models.QueueItem) error {
	log.Printf("Starting processing pipeline for video: %s", item.VideoID)

	procLog, err := logger.NewProcessLogger(p.config.StoragePath, item.VideoID)
	if err != nil {
		log.Printf("Warning: failed to create process logger: %v", err)
		procLog = nil // Continue without logging
	}

	if procLog != nil {
		procLog.Info("Starting song processing pipeline for: %s", item.VideoID)
		procLog.Property("Queue ID", item.ID)
		procLog.Property("Lyrics Mode", item.LyricsMode)
		defer func() {
			if r := recover(); r != nil {
				procLog.Error("Pipeline panicked: %v", r)
				procLog.Close(false, fmt.Sprintf("Panic: %v", r))
			}
		}()
	}

	// Phase 1: Metadata and audio (0-30%)
	song, audioPath, err := p.fetchSong(item, procLog)
	if err != nil {
		if procLog != nil {
			procLog.Error("Fetch failed: %v", err)
			procLog.Close(false, err.Error())
		}
		return fmt.Errorf("fetch failed: %w", err)
	}

	// Phase 2: Audio analysis (30-40%)
	if err := p.analyzeAudio(item, song, audioPath, procLog); err != nil {
		if procLog != nil {
			procLog.Error("Audio analysis failed: %v", err)
			procLog.Close(false, err.Error())
		}
		return fmt.Errorf("audio analysis failed: %w", err)
	}

	// Phase 3: Lyrics (40-70%)
	segments, language, source, err := p.resolveLyrics(item, song, audioPath, procLog)
	if err != nil {
		if procLog != nil {
			procLog.Error("Lyrics processing failed: %v", err)
			procLog.Close(false, err.Error())
		}
		return fmt.Errorf("lyrics processing failed: %w", err)
	}

	// Phase 4: Structure analysis (70-80%)
	p.updateProgress(item, "Analyzing structure", 70, "Detecting song sections")
	structure := lyrics.AnalyzeStructure(segments, song.DurationSeconds)
	structure.EstimatedBPM = song.BPM

	if procLog != nil {
		procLog.Step("STRUCTURE", "Analyzing lyrics structure")
		procLog.Property("Sections", len(structure.Sections))
		for _, s := range structure.Sections {
			procLog.Info("  %s: %.0fs - %.0fs (%d lines)", s.Label, s.Start, s.End, len(s.Lines))
		}
		procLog.Property("Repeated Sections", len(structure.RepeatedSections))
	}

	// Phase 5: Choreography (80-95%)
	routine, err := p.generateChoreography(item, song, segments, structure, procLog)
	if err != nil {
		// The fallback routine keeps the pipeline going, so only log.
		log.Printf("Warning: AI choreography failed, using fallback: %v", err)
		if procLog != nil {
			procLog.Error("AI choreography failed, using fallback: %v", err)
		}
	}

	// Phase 6: Persist everything (95-100%)
	if err := p.save(item, song, segments, structure, routine, language, source, procLog); err != nil {
		if procLog != nil {
			procLog.Error("Save failed: %v", err)
			procLog.Close(false, err.Error())
		}
		return fmt.Errorf("save failed: %w", err)
	}

	if procLog != nil {
		procLog.Success("Song processing pipeline completed successfully")
		procLog.Close(true, "All phases completed without errors")
	}

	return nil
}

// fetchSong fetches video metadata and downloads the audio track
func (p *Processor) fetchSong(item *models.QueueItem, procLog *logger.ProcessLogger) (*models.Song, string, error) {
	if procLog != nil {
		procLog.Step("FETCH", "Fetching video metadata and audio")
	}
	p.updateProgress(item, "Fetching metadata", 5, "Looking up video info")

	info, err := youtube.FetchVideoInfo(item.VideoID)
	if err != nil {
		// Metadata is cosmetic, keep going with placeholders.
		log.Printf("Warning: failed to fetch video info for %s: %v", item.VideoID, err)
		info = &youtube.VideoInfo{Title: "Unknown", Artist: "Unknown Artist"}
	}

	song := &models.Song{
		VideoID:      item.VideoID,
		Title:        info.Title,
		Artist:       info.Artist,
		YoutubeURL:   item.YoutubeURL,
		ThumbnailURL: info.ThumbnailURL,
		Difficulty:   2,
	}

	if procLog != nil {
		procLog.Property("Title", song.Title)
		procLog.Property("Artist", song.Artist)
	}

	p.updateProgress(item, "Downloading audio", 10, "Downloading audio track")

	audioPath, err := p.downloader.DownloadAudio(item.VideoID)
	if err != nil {
		return nil, "", fmt.Errorf("audio download failed: %w", err)
	}

	if procLog != nil {
		procLog.Property("Audio Path", audioPath)
	}
	p.updateProgress(item, "Downloading audio", 30, "Audio ready")

	return song, audioPath, nil
}

// analyzeAudio measures duration and estimates BPM
func (p *Processor) analyzeAudio(item *models.QueueItem, song *models.Song, audioPath string, procLog *logger.ProcessLogger) error {
	if procLog != nil {
		procLog.Step("AUDIO", "Measuring duration and tempo")
	}
	p.updateProgress(item, "Analyzing audio", 32, "Measuring duration")

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return fmt.Errorf("duration probe failed: %w", err)
	}
	song.DurationSeconds = duration

	p.updateProgress(item, "Analyzing audio", 36, "Detecting tempo")
	song.BPM = audio.DetectBPM(audioPath)

	if procLog != nil {
		procLog.Property("Duration", fmt.Sprintf("%.1fs", duration))
		procLog.Property("BPM", song.BPM)
	}

	p.updateProgress(item, "Analyzing audio", 40,
		fmt.Sprintf("Duration %.0fs, %.0f BPM", duration, song.BPM))
	return nil
}

// resolveLyrics produces timestamped lyric segments, either by
// transcribing the audio or by aligning manually supplied lyrics to a
// transcription's timing.
func (p *Processor) resolveLyrics(item *models.QueueItem, song *models.Song, audioPath string, procLog *logger.ProcessLogger) ([]lyrics.Segment, string, string, error) {
	if procLog != nil {
		procLog.Step("LYRICS", "Transcribing and timing lyrics")
	}
	p.updateProgress(item, "Transcribing", 45, "Running speech recognition")

	transcription, err := lyrics.Transcribe(audioPath, p.config.WhisperModel)

	if item.LyricsMode == models.LyricsModeManual && item.ManualLyrics != "" {
		// Manual lyrics are textually correct but untimed. Use the
		// transcription only as a timing reference.
		var reference []lyrics.Segment
		language := ""
		if err != nil {
			log.Printf("Warning: transcription failed, distributing manual lyrics evenly: %v", err)
			if procLog != nil {
				procLog.Error("Transcription failed, using even distribution: %v", err)
			}
		} else {
			reference = transcription.Segments
			language = transcription.Language
		}

		p.updateProgress(item, "Aligning lyrics", 60, "Aligning manual lyrics to audio timing")

		aligned := lyrics.AlignManualLyrics(item.ManualLyrics, reference, song.DurationSeconds)
		segments := make([]lyrics.Segment, len(aligned))
		matched := 0
		for i, a := range aligned {
			segments[i] = lyrics.Segment{Start: a.Start, End: a.End, Text: a.Text}
			if a.Matched {
				matched++
			}
		}

		if procLog != nil {
			procLog.Property("Manual Lines", len(aligned))
			procLog.Property("Matched Lines", matched)
		}
		p.updateProgress(item, "Aligning lyrics", 70,
			fmt.Sprintf("Aligned %d lines (%d matched)", len(aligned), matched))

		return segments, language, "manual", nil
	}

	if err != nil {
		return nil, "", "", fmt.Errorf("transcription failed: %w", err)
	}
	if len(transcription.Segments) == 0 {
		return nil, "", "", fmt.Errorf("transcription produced no usable lyrics")
	}

	if procLog != nil {
		procLog.Property("Segments", len(transcription.Segments))
		procLog.Property("Language", transcription.Language)
	}
	p.updateProgress(item, "Transcribing", 70,
		fmt.Sprintf("Transcribed %d segments", len(transcription.Segments)))

	return transcription.Segments, transcription.Language, "whisper", nil
}

// generateChoreography calls the AI client, falling back to a generated
// basic routine on failure.
func (p *Processor) generateChoreography(item *models.QueueItem, song *models.Song,
	segments []lyrics.Segment, structure *lyrics.StructureResult, procLog *logger.ProcessLogger) ([]models.ChoreoMove, error) {

	if procLog != nil {
		procLog.Step("CHOREOGRAPHY", "Generating dance routine")
	}
	p.updateProgress(item, "Generating choreography", 80, "Building dance routine")

	routine, err := p.aiClient.GenerateRoutine(song, segments, structure, song.DurationSeconds)

	if procLog != nil {
		procLog.Property("Moves", len(routine))
	}
	p.updateProgress(item, "Generating choreography", 95,
		fmt.Sprintf("Routine has %d moves", len(routine)))

	return routine, err
}

// save persists the song, lyrics and routine
func (p *Processor) save(item *models.QueueItem, song *models.Song,
	segments []lyrics.Segment, structure *lyrics.StructureResult,
	routine []models.ChoreoMove, language, source string, procLog *logger.ProcessLogger) error {

	if procLog != nil {
		procLog.Step("SAVE", "Persisting song, lyrics and routine")
	}
	p.updateProgress(item, "Saving", 97, "Writing results to database")

	if err := p.songRepo.Upsert(song); err != nil {
		return fmt.Errorf("failed to save song: %w", err)
	}

	segmentsJSON, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("failed to marshal segments: %w", err)
	}
	structureJSON, err := json.Marshal(structure)
	if err != nil {
		return fmt.Errorf("failed to marshal structure: %w", err)
	}

	record := &models.LyricsRecord{
		VideoID:       song.VideoID,
		SegmentsJSON:  string(segmentsJSON),
		StructureJSON: string(structureJSON),
		Language:      language,
		Source:        source,
	}
	if err := p.lyricsRepo.Save(record); err != nil {
		return fmt.Errorf("failed to save lyrics: %w", err)
	}

	routineJSON, err := json.Marshal(routine)
	if err != nil {
		return fmt.Errorf("failed to marshal routine: %w", err)
	}

	// Reprocessing a song keeps any existing routines. The new routine
	// only becomes the default when the song has none yet.
	existing, err := p.routineRepo.CountByVideoID(song.VideoID)
	if err != nil {
		return fmt.Errorf("failed to check existing routines: %w", err)
	}

	rt := &models.Routine{
		VideoID:          song.VideoID,
		VersionName:      "Original",
		MoveSequenceJSON: string(routineJSON),
		IsDefault:        existing == 0,
	}
	if existing > 0 {
		rt.VersionName = fmt.Sprintf("Regenerated %d", existing+1)
	}
	if err := p.routineRepo.Create(rt); err != nil {
		return fmt.Errorf("failed to save routine: %w", err)
	}

	if procLog != nil {
		procLog.Property("Routine ID", rt.RoutineID)
		procLog.Property("Routine Version", rt.VersionName)
	}

	log.Printf("Saved song %s with %d segments, %d sections, %d moves",
		song.VideoID, len(segments), len(structure.Sections), len(routine))
	return nil
}

// updateProgress updates the queue item progress and broadcasts it
func (p *Processor) updateProgress(item *models.QueueItem, step string, progress int, message string) {
	item.CurrentStep = step
	item.Progress = progress

	p.broadcaster.BroadcastFromQueueItem(item, message)

	log.Printf("[Queue %d] %s: %d%% - %s", item.ID, step, progress, message)
}
