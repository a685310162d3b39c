/*
 * Pocket2e - romtool: ROM image hashing and verification CLI.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// romtool hashes and verifies ROM images against the policy a machine
// profile pins them to (strict/warn/fallback), standalone from the
// monitor binary so it doesn't fight main.go's getopt flag set.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/rcornwell/pocket2e/profile"
)

func main() {
	app := &cli.App{
		Name:  "romtool",
		Usage: "hash and verify Pocket2e ROM images",
		Commands: []*cli.Command{
			{
				Name:      "hash",
				Usage:     "print the SHA-256 of a ROM image file",
				ArgsUsage: "<file>",
				Action:    runHash,
			},
			{
				Name:      "verify",
				Usage:     "verify a ROM image against an expected hash under a policy",
				ArgsUsage: "<file> <sha256>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "policy",
						Value: string(profile.PolicyStrict),
						Usage: "strict, warn, or fallback",
					},
				},
				Action: runVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHash(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("romtool hash: missing <file>", 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(data)
	fmt.Println(hex.EncodeToString(sum[:]))
	return nil
}

func runVerify(c *cli.Context) error {
	path := c.Args().Get(0)
	want := c.Args().Get(1)
	if path == "" || want == "" {
		return cli.Exit("romtool verify: usage: verify <file> <sha256>", 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	image := profile.ROMImage{
		Path:   path,
		SHA256: want,
		Policy: profile.VerificationPolicy(c.String("policy")),
	}
	ok, err := image.Verify(data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if ok {
		fmt.Println("OK")
		return nil
	}
	fmt.Printf("MISMATCH (policy=%s)\n", image.Policy)
	return nil
}
