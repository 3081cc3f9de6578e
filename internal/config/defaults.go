package config

const (
	defaultModelSize      = "base"
	defaultTask           = "transcribe"
	defaultComputeType    = "float16"
	defaultWhisperBinary  = "whisper"
	defaultProvider       = "openai"
	defaultTargetLanguage = "English"
	defaultBatchSize      = 1
	defaultFormat         = "srt"
	defaultMaxLineLength  = 42
	defaultMaxLines       = 2
	defaultJournalPath    = "~/.local/share/whisparr/journal.db"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Whisper: Whisper{
			ModelSize:   defaultModelSize,
			Task:        defaultTask,
			ComputeType: defaultComputeType,
			Binary:      defaultWhisperBinary,
		},
		Translation: Translation{
			Provider:       defaultProvider,
			TargetLanguage: defaultTargetLanguage,
			ContextAware:   true,
			BatchSize:      defaultBatchSize,
		},
		Subtitle: Subtitle{
			Format:        defaultFormat,
			MaxLineLength: defaultMaxLineLength,
			MaxLines:      defaultMaxLines,
		},
		Processing: Processing{
			VideoExtensions: []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm"},
			AudioExtensions: []string{".mp3", ".wav", ".flac", ".aac", ".m4a", ".ogg"},
		},
		Journal: Journal{
			Path: defaultJournalPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
