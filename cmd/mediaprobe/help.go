package main

import (
	"fmt"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var (
	flagInput       string
	flagSeek        int64
	flagDump        int
	flagThumbnail   string
	flagThumbTime   int64
	flagThumbWidth  int
	flagThumbHeight int
	flagOutput      string
	flagDuration    int64
	flagRemoveAudio bool
	flagRemoveVideo bool
	flagFFprobe     string
	flagFFmpeg      string
	flagHelp        bool
	flagVersion     bool
)

func init() {
	flag.StringVarP(&flagInput, "input", "i", "", "Source spec, e.g. file:clip.mp4")
	flag.Int64VarP(&flagSeek, "seek", "s", 0, "Seek offset, in milliseconds")
	flag.IntVarP(&flagDump, "dump", "d", 0, "Number of samples to print")
	flag.StringVarP(&flagThumbnail, "thumbnail", "t", "", "Write a PNG thumbnail to FILE")
	flag.Int64VarP(&flagThumbTime, "thumb-time", "", 0, "Thumbnail position, in milliseconds")
	flag.IntVarP(&flagThumbWidth, "thumb-width", "", 0, "Thumbnail bounding box width")
	flag.IntVarP(&flagThumbHeight, "thumb-height", "", 0, "Thumbnail bounding box height")
	flag.StringVarP(&flagOutput, "output", "o", "", "Remux selected tracks to an MP4 FILE")
	flag.Int64VarP(&flagDuration, "duration", "", 0, "Remux at most this many milliseconds")
	flag.BoolVarP(&flagRemoveAudio, "no-audio", "", false, "Leave audio out of the remux")
	flag.BoolVarP(&flagRemoveVideo, "no-video", "", false, "Leave video out of the remux")
	flag.StringVarP(&flagFFprobe, "ffprobe", "", "ffprobe", "ffprobe binary")
	flag.StringVarP(&flagFFmpeg, "ffmpeg", "", "ffmpeg", "ffmpeg binary")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Inspect, seek, and remux media files

Usage: mediaprobe [OPTION]... [SOURCE]

SOURCE is a source spec such as file:clip.mp4 or https://host/clip.mp4. A bare
path is treated as a file.

Inspection:
  -s, --seek=MS          Seek before reading, in milliseconds (default: 0)
  -d, --dump=NUM         Print the first NUM samples after the seek

Thumbnails:
  -t, --thumbnail=FILE   Write a PNG thumbnail
      --thumb-time=MS    Thumbnail position, in milliseconds (default: 0)
      --thumb-width=NUM  Fit the thumbnail inside this width
      --thumb-height=NUM Fit the thumbnail inside this height

Remux:
  -o, --output=FILE      Copy audio and video to an MP4 file
      --duration=MS      Stop after this many milliseconds
      --no-audio         Leave audio out
      --no-video         Leave video out

Tools:
      --ffprobe=FILE     ffprobe binary (default: ffprobe)
      --ffmpeg=FILE      ffmpeg binary (default: ffmpeg)

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Log levels are set with LOGLEVEL, e.g. LOGLEVEL=media=debug,info`

// Help information is printed and program exits
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//                      _  _
	//  _ __ ___    ___  __| |(_)  __ _
	// | '_ ` _ \  / _ \/ _` || | / _` |
	// | | | | | ||  __/ (_| || || (_| |
	// |_| |_| |_| \___|\__,_||_| \__,_|

	// Line 1
	r.Printf("            ")
	y.Printf("      ")
	b.Printf("  _ ")
	y.Printf(" _ ")
	r.Println("      ")

	// Line 2
	r.Printf(" _ __ ___   ")
	y.Printf(" ___ ")
	b.Printf(" __| |")
	y.Printf("(_)")
	r.Println("  __ _ ")

	// Line 3
	r.Printf("| '_ ` _ \\  ")
	y.Printf("/ _ \\")
	b.Printf("/ _` |")
	y.Printf("| |")
	r.Println(" / _` |")

	// Line 4
	r.Printf("| | | | | | ")
	y.Printf("|  __/")
	b.Printf(" (_| |")
	y.Printf("| |")
	r.Println("| (_| |")

	// Line 5
	r.Printf("|_| |_| |_| ")
	y.Printf(" \\___|")
	b.Printf("\\__,_|")
	y.Printf("|_|")
	r.Println(" \\__,_|")

	fmt.Println(helpString)
}
