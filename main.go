package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"veil/config"
	"veil/cryptography"
	"veil/local"
	"veil/media"
	"veil/stegano"
	"veil/stegano/audio"
	"veil/stegano/video"
	"veil/util"
)

const (
	VeilFolder     = ".veil"
	ConfigFilename = "config.yml"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	conf := loadConfig()
	logger := util.NewLogger(&conf.Logger)

	switch os.Args[1] {
	case "video-encode":
		cmdVideoEncode(conf, logger, os.Args[2:])
	case "video-decode":
		cmdVideoDecode(conf, logger, os.Args[2:])
	case "hide":
		cmdHide(os.Args[2:])
	case "reveal":
		cmdReveal(os.Args[2:])
	case "serve":
		ff := newFFmpeg(conf)
		if err := local.RunApiServer(conf, logger, ff); err != nil {
			fatal("Server failed:", err)
		}
	case "init-config":
		path := configPath()
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			fatal("Failed to create config folder:", err)
		}
		if err := config.SaveConfig(path, conf); err != nil {
			fatal("Failed to save config:", err)
		}
		fmt.Println("Config written to", path)
	default:
		help()
	}
}

func addCodecFlags(fs *flag.FlagSet, opts *audio.Options) {
	fs.Float64Var(&opts.FrameDuration, "frame-duration", opts.FrameDuration, "seconds per frame")
	fs.Float64Var(&opts.CompareFraction, "compare-fraction", opts.CompareFraction, "compare distance as a fraction of the frame")
	fs.StringVar(&opts.Header, "header", opts.Header, "header bit pattern")
	fs.StringVar(&opts.Footer, "footer", opts.Footer, "footer bit pattern")
}

func cmdVideoEncode(conf *config.FullConfig, logger *util.Logger, args []string) {
	fs := flag.NewFlagSet("video-encode", flag.ExitOnError)
	opts := conf.Options()
	addCodecFlags(fs, &opts)
	message := fs.String("message", "", "message to hide")
	password := fs.String("password", "", "encrypt the message with this password (prompted when empty and -encrypt is set)")
	encrypt := fs.Bool("encrypt", false, "prompt for a password")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: veil video-encode [flags] input [output]", nil)
	}
	if *message == "" {
		fatal("A message is required (-message)", nil)
	}

	req := video.EncodeRequest{
		InputPath:  fs.Arg(0),
		OutputPath: fs.Arg(1),
		Message:    []byte(*message),
		Password:   askPassword(*password, *encrypt),
		SampleRate: conf.StegConfig.SampleRate,
		Options:    opts,
	}

	outPath, rep, err := video.Encode(newFFmpeg(conf), req)
	if err != nil {
		fatal("Encoding failed:", err)
	}
	for _, warning := range rep.Warnings {
		logger.LogWarning(warning)
	}
	fmt.Printf("Using frame size: %d samples (%.8f seconds per frame).\n", rep.FrameSize, rep.FrameDuration)
	fmt.Println("Make sure to use this frame duration when decoding!")
	fmt.Println("Done. Output:", outPath)
}

func cmdVideoDecode(conf *config.FullConfig, logger *util.Logger, args []string) {
	fs := flag.NewFlagSet("video-decode", flag.ExitOnError)
	opts := conf.Options()
	addCodecFlags(fs, &opts)
	password := fs.String("password", "", "decrypt the message with this password")
	encrypted := fs.Bool("encrypted", false, "prompt for a password")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: veil video-decode [flags] input", nil)
	}

	payload, rep, err := video.Decode(newFFmpeg(conf), fs.Arg(0),
		askPassword(*password, *encrypted), conf.StegConfig.SampleRate, opts)
	if err != nil {
		fatal("Decoding failed:", err)
	}
	for _, warning := range rep.Warnings {
		logger.LogWarning(warning)
	}
	fmt.Printf("Header found at bit %d, footer at bit %d.\n", rep.HeaderIndex, rep.FooterIndex)
	fmt.Println("Decoded message:", string(payload))
}

func cmdHide(args []string) {
	fs := flag.NewFlagSet("hide", flag.ExitOnError)
	message := fs.String("message", "", "message to hide")
	password := fs.String("password", "", "encrypt the message with this password")
	encrypt := fs.Bool("encrypt", false, "prompt for a password")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fatal("Usage: veil hide [flags] decoy output", nil)
	}
	if *message == "" {
		fatal("A message is required (-message)", nil)
	}

	payload := []byte(*message)
	if pw := askPassword(*password, *encrypt); pw != "" {
		blob, err := cryptography.EncryptMessage(pw, payload)
		if err != nil {
			fatal("Encryption failed:", err)
		}
		payload = []byte(blob)
	}

	decoy, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatal("Failed to read decoy:", err)
	}
	out, err := stegano.Hide(fs.Arg(0), decoy, payload)
	if err != nil {
		fatal("Hiding failed:", err)
	}
	if err = os.WriteFile(fs.Arg(1), out, 0600); err != nil {
		fatal("Failed to write output:", err)
	}
	fmt.Println("Done. Output:", fs.Arg(1))
}

func cmdReveal(args []string) {
	fs := flag.NewFlagSet("reveal", flag.ExitOnError)
	password := fs.String("password", "", "decrypt the message with this password")
	encrypted := fs.Bool("encrypted", false, "prompt for a password")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fatal("Usage: veil reveal [flags] stego-file", nil)
	}

	decoy, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatal("Failed to read file:", err)
	}
	payload, err := stegano.Reveal(fs.Arg(0), decoy)
	if err != nil {
		fatal("Extraction failed:", err)
	}
	if pw := askPassword(*password, *encrypted); pw != "" {
		payload, err = cryptography.DecryptMessage(pw, string(payload))
		if err != nil {
			fatal("Decryption failed (wrong password?):", err)
		}
	}
	fmt.Println("Decoded message:", string(payload))
}

func newFFmpeg(conf *config.FullConfig) *media.FFmpeg {
	ff, err := media.NewFFmpeg(conf.StegConfig.FFmpegPath)
	if err != nil {
		fatal("Media tool unavailable:", err)
	}
	return ff
}

func askPassword(password string, prompt bool) string {
	if password != "" || !prompt {
		return password
	}
	pw, err := util.GetPasswd("Password: ")
	if err != nil {
		fatal("Failed to read password:", err)
	}
	return string(pw)
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFilename
	}
	return filepath.Join(home, VeilFolder, ConfigFilename)
}

func loadConfig() *config.FullConfig {
	conf, err := config.LoadConfig(configPath())
	if err != nil {
		return config.DefaultConfig()
	}
	return conf
}

func fatal(msg string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, msg, err)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}

func help() {
	fmt.Println(`veil - hide messages in the audio track of videos (and other carriers)

Usage: veil <command> [flags] [args]

Commands:
  video-encode [flags] input [output]   hide a message in a video's audio track
  video-decode [flags] input            recover a message from a video
  hide [flags] decoy output             hide a message in a wav/flac/mp3/png/bmp/text file
  reveal [flags] stego-file             recover a message from a carrier file
  serve                                 run the local HTTP API
  init-config                           write the default config to ~/` + VeilFolder + `/` + ConfigFilename + `

The encoder prints the frame duration it actually used; pass the same
value (and the same compare fraction, header, footer and password) to
video-decode, or the message cannot be found.`)
}
