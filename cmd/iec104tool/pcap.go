// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/spf13/cobra"

	"github.com/riclolsen/go-iec104/asdu"
	"github.com/riclolsen/go-iec104/cs104"
)

func newPcapCmd() *cobra.Command {
	var port uint16
	cmd := &cobra.Command{
		Use:   "pcap <capture file>",
		Short: "Dissect IEC 60870-5-104 frames from a packet capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPcap(args[0], port)
		},
	}
	cmd.Flags().Uint16VarP(&port, "port", "p", 2404, "server TCP port of the captured traffic")
	return cmd
}

func runPcap(path string, port uint16) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	if err != nil {
		return fmt.Errorf("read capture: %w", err)
	}

	// per direction reassembly buffers, keyed by the TCP flow
	flows := make(map[string][]byte)
	source := gopacket.NewPacketSource(r, r.LinkType())
	for packet := range source.Packets() {
		tcpLayer := packet.Layer(layers.LayerTypeTCP)
		if tcpLayer == nil {
			continue
		}
		tcp := tcpLayer.(*layers.TCP)
		if uint16(tcp.SrcPort) != port && uint16(tcp.DstPort) != port {
			continue
		}
		if len(tcp.Payload) == 0 {
			continue
		}
		netLayer := packet.NetworkLayer()
		if netLayer == nil {
			continue
		}
		flow := netLayer.NetworkFlow()
		key := fmt.Sprintf("%s:%s > %s:%s", flow.Src(), tcp.SrcPort, flow.Dst(), tcp.DstPort)

		buf := append(flows[key], tcp.Payload...)
		ts := packet.Metadata().Timestamp.Format("15:04:05.000000")
		for len(buf) > 0 {
			ctl, apdu, n, err := cs104.DissectAPDU(buf)
			if errors.Is(err, cs104.ErrIncompleteFrame) {
				break
			}
			if err != nil {
				// resync on the next candidate start octet
				buf = buf[1:]
				continue
			}
			fmt.Printf("%s %s %v", ts, key, ctl)
			if len(apdu.ASDU) > 0 {
				a := asdu.NewEmptyASDU(asdu.ParamsWide)
				if uerr := a.UnmarshalBinary(apdu.ASDU); uerr == nil {
					fmt.Printf(" %s", a.Identifier)
				} else {
					fmt.Printf(" undecodable ASDU: %v", uerr)
				}
			}
			fmt.Println()
			buf = buf[n:]
		}
		flows[key] = buf
	}
	return nil
}
