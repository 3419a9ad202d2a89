package deps

// Availability is the startup snapshot of which cleaning collaborators this
// run can use. Exiftool and FFmpeg are external binaries resolved from PATH
// (or an explicit configured path); the remaining strategies are compiled in
// and always present, listed here so status output and the dispatcher share
// one picture.
type Availability struct {
	Exiftool     bool
	ExiftoolPath string
	FFmpeg       bool
	FFmpegPath   string
}

// Probe resolves the configured exiftool and ffmpeg commands once.
// Empty command strings fall back to the conventional binary names.
func Probe(exiftoolCmd, ffmpegCmd string) Availability {
	if exiftoolCmd == "" {
		exiftoolCmd = "exiftool"
	}
	if ffmpegCmd == "" {
		ffmpegCmd = "ffmpeg"
	}
	statuses := CheckBinaries([]Requirement{
		{Name: "exiftool", Command: exiftoolCmd, Description: "General-purpose metadata stripper, tried first for every file"},
		{Name: "ffmpeg", Command: ffmpegCmd, Description: "Video remux / re-encode for container metadata"},
	})
	avail := Availability{}
	for _, st := range statuses {
		switch st.Name {
		case "exiftool":
			avail.Exiftool = st.Available
			avail.ExiftoolPath = st.Command
		case "ffmpeg":
			avail.FFmpeg = st.Available
			avail.FFmpegPath = st.Command
		}
	}
	return avail
}

// Statuses renders the snapshot (plus the built-in library strategies) for
// status tables and verbose run headers.
func (a Availability) Statuses() []Status {
	builtin := func(name, desc string) Status {
		return Status{Name: name, Command: "built-in", Description: desc, Available: true}
	}
	return []Status{
		{Name: "exiftool", Command: a.ExiftoolPath, Description: "General-purpose metadata stripper", Available: a.Exiftool, Detail: detailFor(a.Exiftool, a.ExiftoolPath)},
		{Name: "ffmpeg", Command: a.FFmpegPath, Description: "Video remux / re-encode", Available: a.FFmpeg, Detail: detailFor(a.FFmpeg, a.FFmpegPath)},
		builtin("image rewrite", "Pixel-only re-encode for jpeg/png/gif/tiff/bmp"),
		builtin("pdf rewrite", "Info dictionary and XMP packet removal"),
		builtin("office rewrite", "OOXML docProps scrub for docx/xlsx"),
		builtin("audio tags", "ID3/Vorbis/RIFF tag removal"),
	}
}

func detailFor(available bool, command string) string {
	if available {
		return ""
	}
	if command == "" {
		return "not found"
	}
	return "binary " + command + " not found"
}
