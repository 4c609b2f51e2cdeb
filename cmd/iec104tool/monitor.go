// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/riclolsen/go-iec104/asdu"
	"github.com/riclolsen/go-iec104/cs104"
)

func newMonitorCmd() *cobra.Command {
	var (
		configPath string
		server     string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Connect to a controlled station and print received data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if server != "" {
				cfg.Server = server
			}
			if debug {
				cfg.Debug = true
			}
			if cfg.Server == "" {
				return fmt.Errorf("no server endpoint configured, use --server or the config file")
			}
			return runMonitor(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&server, "server", "s", "", "controlled station endpoint, e.g. tcp://10.0.0.1:2404")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable protocol logging")
	return cmd
}

func runMonitor(cfg *toolConfig) error {
	opt := cs104.NewOption().
		SetConfig(cfg.cs104Config()).
		SetAutoReconnect(cfg.Reconnect).
		SetReconnectInterval(cfg.ReconnectInterval)
	if err := opt.AddRemoteServer(cfg.Server); err != nil {
		return err
	}

	client, err := cs104.NewClient(&monitorHandler{}, opt)
	if err != nil {
		return err
	}
	client.SetLogMode(cfg.Debug)
	client.SetOnConnectHandler(func(c *cs104.Client) {
		fmt.Println("# data transfer active")
		if cfg.GeneralInterrogation {
			coa := asdu.CauseOfTransmission{Cause: asdu.Activation}
			if err := c.InterrogationCmd(coa, asdu.CommonAddr(cfg.CommonAddr), asdu.QOIStation); err != nil {
				fmt.Fprintf(os.Stderr, "interrogation failed: %v\n", err)
			}
		}
	})
	client.SetConnectionLostHandler(func(_ *cs104.Client, err error) {
		fmt.Printf("# connection lost: %v\n", err)
	})
	client.SetConnectErrorHandler(func(_ *cs104.Client, err error) {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
	})

	if err := client.Start(); err != nil {
		return err
	}
	defer client.Close()

	var clockSync <-chan time.Time
	if cfg.ClockSyncInterval > 0 {
		ticker := time.NewTicker(cfg.ClockSyncInterval)
		defer ticker.Stop()
		clockSync = ticker.C
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-clockSync:
			if client.IsActive() {
				coa := asdu.CauseOfTransmission{Cause: asdu.Activation}
				if err := client.ClockSynchronizationCmd(coa, asdu.CommonAddr(cfg.CommonAddr), time.Now()); err != nil {
					fmt.Fprintf(os.Stderr, "clock sync failed: %v\n", err)
				}
			}
		case <-sig:
			fmt.Println("# shutting down")
			return nil
		}
	}
}

// monitorHandler prints every decoded information object.
type monitorHandler struct{}

func (monitorHandler) InterrogationHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("interrogation", a)
	return nil
}

func (monitorHandler) CounterInterrogationHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("counter", a)
	return nil
}

func (monitorHandler) ReadHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("read", a)
	return nil
}

func (monitorHandler) TestCommandHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("testcmd", a)
	return nil
}

func (monitorHandler) ClockSyncHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("clocksync", a)
	return nil
}

func (monitorHandler) ResetProcessHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("resetproc", a)
	return nil
}

func (monitorHandler) DelayAcquisitionHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("delayacq", a)
	return nil
}

func (monitorHandler) ASDUHandler(_ asdu.Connect, a *asdu.ASDU) error {
	printASDU("data", a)
	return nil
}

func (monitorHandler) ASDUHandlerAll(asdu.Connect, *asdu.ASDU) error { return nil }

// printASDU renders the information objects of a monitor direction ASDU, one
// line per object.
func printASDU(tag string, a *asdu.ASDU) {
	switch a.Type {
	case asdu.M_SP_NA_1, asdu.M_SP_TA_1, asdu.M_SP_TB_1:
		infos, err := a.Clone().GetSinglePoint()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%t qds=0x%02X %s\n", tag, a.Type, v.Ioa, v.Value, byte(v.Qds), timeTag(v.Time))
		}
		return
	case asdu.M_DP_NA_1, asdu.M_DP_TA_1, asdu.M_DP_TB_1:
		infos, err := a.Clone().GetDoublePoint()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%d qds=0x%02X %s\n", tag, a.Type, v.Ioa, v.Value, byte(v.Qds), timeTag(v.Time))
		}
		return
	case asdu.M_ST_NA_1:
		infos, err := a.Clone().GetStepPosition()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%d transient=%t qds=0x%02X\n", tag, a.Type, v.Ioa, v.Value.Val, v.Value.HasTransient, byte(v.Qds))
		}
		return
	case asdu.M_BO_NA_1:
		infos, err := a.Clone().GetBitString32()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=0x%08X qds=0x%02X\n", tag, a.Type, v.Ioa, v.Value, byte(v.Qds))
		}
		return
	case asdu.M_ME_NA_1, asdu.M_ME_TA_1:
		infos, err := a.Clone().GetMeasuredValueNormal()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%.6f qds=0x%02X %s\n", tag, a.Type, v.Ioa, v.Value.Float64(), byte(v.Qds), timeTag(v.Time))
		}
		return
	case asdu.M_ME_NB_1, asdu.M_ME_TB_1:
		infos, err := a.Clone().GetMeasuredValueScaled()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%d qds=0x%02X %s\n", tag, a.Type, v.Ioa, v.Value, byte(v.Qds), timeTag(v.Time))
		}
		return
	case asdu.M_ME_NC_1, asdu.M_ME_TC_1, asdu.M_ME_TF_1:
		infos, err := a.Clone().GetMeasuredValueFloat()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%g qds=0x%02X %s\n", tag, a.Type, v.Ioa, v.Value, byte(v.Qds), timeTag(v.Time))
		}
		return
	case asdu.M_IT_NA_1:
		infos, err := a.Clone().GetIntegratedTotals()
		if err != nil {
			break
		}
		for _, v := range infos {
			fmt.Printf("%s %s ioa=%d value=%d seq=%d invalid=%t\n", tag, a.Type, v.Ioa, v.Value.CounterReading, v.Value.SeqNumber, v.Value.IsInvalid)
		}
		return
	}
	fmt.Printf("%s %s\n", tag, a.Identifier)
}

func timeTag(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05.000")
}
