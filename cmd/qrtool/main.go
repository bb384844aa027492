/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command qrtool is an example CLI wrapping the qrcode package: encode
// text to a PNG or terminal symbol, decode a PNG back to text, or fix a
// damaged/low-quality PNG by re-encoding its recovered payload.
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/mdp/qrterminal/v3"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/mohsen2hasani/qrcode"
)

var ecNames = map[string]qrcode.ECLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.Quartile,
	"H": qrcode.High,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrtool",
		Short: "Encode, decode, and fix QR code symbols",
	}
	root.AddCommand(newEncodeCmd(), newDecodeCmd(), newFixCmd())
	return root
}

func newEncodeCmd() *cobra.Command {
	var (
		ecName   string
		out      string
		terminal bool
		open     bool
	)
	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text into a QR code symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, ok := ecNames[ecName]
			if !ok {
				return fmt.Errorf("unknown error correction level %q", ecName)
			}

			if terminal {
				qrterminal.GenerateWithConfig(args[0], qrterminal.Config{
					Level:     toTerminalLevel(level),
					Writer:    os.Stdout,
					BlackChar: qrterminal.BLACK,
					WhiteChar: qrterminal.WHITE,
					QuietZone: qrterminal.QUIET_ZONE,
				})
				return nil
			}

			sym, err := qrcode.NewEncoder(level).EncodeText(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = "qrcode.png"
			}
			if err := sym.SaveQRCodeToPngFile(out); err != nil {
				return err
			}
			if open {
				return browser.OpenFile(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ecName, "level", "M", "error correction level: L, M, Q, or H")
	cmd.Flags().StringVar(&out, "out", "", "output PNG path (default qrcode.png)")
	cmd.Flags().BoolVar(&terminal, "terminal", false, "render to the terminal instead of a file")
	cmd.Flags().BoolVar(&open, "open", false, "open the generated PNG in the system viewer")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [png]",
		Short: "Decode a QR code symbol from a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadPNGAsPixelSource(args[0])
			if err != nil {
				return err
			}
			results, err := qrcode.ImageDecoder(src, qrcode.CharsetUTF8)
			if err != nil {
				return err
			}
			for _, r := range qrcode.Dedupe(results) {
				fmt.Println(string(r.Data))
			}
			return nil
		},
	}
	return cmd
}

func newFixCmd() *cobra.Command {
	var (
		ecName string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "fix [png]",
		Short: "Decode a damaged QR code and re-encode it cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, ok := ecNames[ecName]
			if !ok {
				return fmt.Errorf("unknown error correction level %q", ecName)
			}
			src, err := loadPNGAsPixelSource(args[0])
			if err != nil {
				return err
			}
			data, sym, err := qrcode.Fix(src, qrcode.CharsetUTF8, level)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "recovered %d bytes\n", len(data))
			if out == "" {
				out = "fixed.png"
			}
			return sym.SaveQRCodeToPngFile(out)
		},
	}
	cmd.Flags().StringVar(&ecName, "level", "M", "error correction level: L, M, Q, or H")
	cmd.Flags().StringVar(&out, "out", "", "output PNG path (default fixed.png)")
	return cmd
}

func loadPNGAsPixelSource(path string) (qrcode.PixelSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return qrcode.PixelSourceFromImage(img), nil
}

func toTerminalLevel(level qrcode.ECLevel) qrterminal.Level {
	switch level {
	case qrcode.Low:
		return qrterminal.L
	case qrcode.Quartile:
		return qrterminal.Q
	case qrcode.High:
		return qrterminal.H
	default:
		return qrterminal.M
	}
}
