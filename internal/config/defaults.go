package config

const (
	defaultInputDir   = "input"
	defaultOutputDir  = "output"
	defaultLockFile   = ".trackprep.lock"
	defaultInstallDir = "ffmpeg"
	// DefaultDownloadURL is a Windows build; it has no ffmpeg binary for other systems.
	DefaultDownloadURL      = "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.zip"
	defaultFolderPrefix     = "ffmpeg-"
	defaultDownloadTimeout  = 600
	defaultManifestName     = "url_list.txt"
	defaultYTDLPBinary      = "yt-dlp"
	defaultAudioFormat      = "wav"
	defaultOutputTemplate   = "%(title)s.%(ext)s"
	defaultSampleRate       = 44100
	defaultChannels         = 1
	defaultSampleFormat     = "s16"
	defaultCodec            = "libvorbis"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultProjectFileName  = "trackprep.toml"
	defaultUserConfigSuffix = "~/.config/trackprep/config.toml"
)

// DefaultExtensions lists the input extensions eligible for conversion.
func DefaultExtensions() []string {
	return []string{
		".mp3", ".wav", ".ogg", ".flac",
		".m4a", ".aac", ".alac", ".opus",
		".wma", ".mp4", ".webm", ".mkv",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LockFile:  defaultLockFile,
		},
		Toolchain: Toolchain{
			InstallDir:      defaultInstallDir,
			DownloadURL:     DefaultDownloadURL,
			FolderPrefix:    defaultFolderPrefix,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Ingest: Ingest{
			ManifestName:   defaultManifestName,
			Binary:         defaultYTDLPBinary,
			AudioFormat:    defaultAudioFormat,
			OutputTemplate: defaultOutputTemplate,
		},
		Transcode: Transcode{
			Extensions:   DefaultExtensions(),
			SampleRate:   defaultSampleRate,
			Channels:     defaultChannels,
			SampleFormat: defaultSampleFormat,
			Codec:        defaultCodec,
			VerifyOutput: true,
		},
		Cleanup: Cleanup{
			Prompt:           true,
			PreserveManifest: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
