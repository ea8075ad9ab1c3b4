package main

import (
	"fmt"
	"os"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/imgio"
)

type Convert struct {
	Output   string `short:"o" desc:"Output file, stdout if empty"`
	Format   string `short:"f" desc:"Output format: png, jpg, tga, hdr or raw"`
	Quality  int    `short:"q" default:"50" desc:"JPEG quality"`
	Stride   int    `desc:"Bytes per row"`
	Channels int    `short:"c" desc:"Output channels"`
	Width    int    `short:"W" default:"-1" desc:"SVG target width"`
	Height   int    `short:"H" default:"-1" desc:"SVG target height"`
	Input    string `index:"0" desc:"Input file"`
}

type Info struct {
	Input string `index:"0" desc:"Input file"`
}

type Version struct{}

func main() {
	root := argp.NewCmd(&Convert{}, "Image conversion toolkit")
	root.AddCmd(&Info{}, "info", "Get image format and size")
	root.AddCmd(&Version{}, "version", "Print version")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	img, err := imgio.Load(cmd.Input, &imgio.DecodeOptions{
		Width:  cmd.Width,
		Height: cmd.Height,
	})
	if err != nil {
		return err
	}
	defer img.Release()

	opts := &imgio.SaveOptions{
		Quality:  cmd.Quality,
		Stride:   cmd.Stride,
		Channels: cmd.Channels,
	}
	if cmd.Format != "" {
		if opts.Format, err = imgio.ParseFormat(cmd.Format); err != nil {
			return err
		}
	}

	if cmd.Output == "" || cmd.Output == "-" {
		return imgio.Write(os.Stdout, img, opts)
	}
	return imgio.SaveFile(img, cmd.Output, opts)
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	img, err := imgio.Decode(b, nil)
	if err != nil {
		return err
	}
	defer img.Release()

	fmt.Println("Format:", imgio.FormatName(b))
	fmt.Println("Width:", img.Width)
	fmt.Println("Height:", img.Height)
	fmt.Println("Channels:", img.Channels)
	return nil
}

func (cmd *Version) Run() error {
	fmt.Println(imgio.Version)
	return nil
}
