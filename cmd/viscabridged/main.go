// cmd/viscabridged/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"viscabridge/internal/config"
	"viscabridge/internal/controller"
	"viscabridge/internal/discovery"
	"viscabridge/internal/events"
	"viscabridge/internal/httpface"
	"viscabridge/internal/hub"
	"viscabridge/internal/inputbridge"
	"viscabridge/internal/passthrough"
	"viscabridge/internal/registry"
	"viscabridge/internal/state"
	"viscabridge/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "Path to viscabridge.yml (defaults to ./configs/viscabridge.yml)")
	statePath := flag.String("state", "./state/cameras.json", "Path to camera topology state file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	reg := registry.NewStore()
	seed := make([]registry.Camera, 0, len(cfg.ViscaIPCameras)+1)
	if cfg.ViscaSerial.Enabled {
		seed = append(seed, registry.Camera{Address: 0, Kind: registry.KindSerial, Addr: cfg.ViscaSerial.Port})
	}
	for _, ip := range cfg.ViscaIPCameras {
		seed = append(seed, registry.Camera{Address: ip.Address, Kind: registry.KindIP, Addr: ip.Addr})
	}
	st, err := state.LoadOrInit(*statePath, seed)
	if err != nil {
		log.Fatalf("state: %v", err)
	}
	for _, c := range st.Cameras {
		reg.Upsert(c)
	}

	evbuf := events.NewRing(1024)
	hb := hub.New()
	ctl := controller.New(evbuf)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 4)

	// 1. Camera transports.
	passthroughEndpoints := map[int]*passthrough.Endpoint{}

	if cfg.ViscaSerial.Enabled {
		bus, err := transport.OpenSerial(
			transport.SerialConfig{Path: cfg.ViscaSerial.Port, Baud: cfg.ViscaSerial.Baud},
			ctl.OnFrame,
			func(err error) { log.Printf("[serial] transport error: %v", err) },
		)
		if err != nil {
			log.Fatalf("serial: %v", err)
		}
		ctl.AddBus(bus)
		reg.SetOnline(cfg.ViscaSerial.Port, true)
		log.Printf("[main] serial bus open on %s @ %d baud", cfg.ViscaSerial.Port, cfg.ViscaSerial.Baud)
	}

	for _, ipCam := range cfg.ViscaIPCameras {
		ipCam := ipCam
		conn, err := transport.DialUDPCamera(
			ctx,
			transport.UDPConfig{Addr: ipCam.Addr},
			func(frame []byte) { ctl.OnFrame(frame) },
			func(err error) { log.Printf("[udp %d] transport error: %v", ipCam.Address, err) },
		)
		if err != nil {
			log.Printf("[main] camera %d (%s): dial failed: %v", ipCam.Address, ipCam.Addr, err)
			continue
		}
		ctl.AddIPCamera(ipCam.Address, conn)
		reg.SetOnline(ipCam.Addr, true)
		log.Printf("[main] camera %d bridged to %s", ipCam.Address, ipCam.Addr)

		addr := ipCam.Addr
		ctl.RegisterTap(ipCam.Address, func(frame []byte) { reg.Touch(addr) })

		if cfg.ViscaServer.PassthroughBasePort > 0 {
			listenAddr := passthroughListenAddr(cfg.ViscaServer.PassthroughBasePort, ipCam.Address)
			ep, err := passthrough.Listen(ipCam.Address, listenAddr, conn)
			if err != nil {
				log.Printf("[main] camera %d: passthrough listen failed: %v", ipCam.Address, err)
			} else {
				passthroughEndpoints[ipCam.Address] = ep
				ctl.RegisterTap(ipCam.Address, ep.OnCameraFrame)
				go ep.Serve(ctx)
			}
		}
	}

	// 2. Controller event loop.
	go ctl.Run(ctx)

	// 3. Bring-up handshake for the daisy chain, once the bus is live.
	if cfg.ViscaSerial.Enabled {
		go func() {
			time.Sleep(200 * time.Millisecond)
			if err := ctl.BringUp(ctx); err != nil {
				log.Printf("[main] bring-up: %v", err)
			}
		}()
	}

	// 4. Topology liveness sweep + periodic state persistence.
	go reg.StartMonitoring(ctx, 10*time.Second)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := state.Save(*statePath, reg.List()); err != nil {
					log.Printf("[main] state save failed: %v", err)
				}
			}
		}
	}()

	// 5. LAN discovery of unconfigured VISCA-over-IP cameras.
	if cfg.Discovery.Enabled {
		go func() {
			discCfg := discovery.Config{LANIfName: cfg.Discovery.LANIfName, PublicIP: cfg.Discovery.PublicIP}
			if err := discovery.Run(ctx, discCfg, 10*time.Second, reg); err != nil && ctx.Err() == nil {
				log.Printf("[discovery] stopped: %v", err)
			}
		}()
	}

	// 6. HTTP façade.
	httpSrv := httpface.New(httpface.Config{Host: cfg.ViscaServer.HTTPHost, Port: cfg.ViscaServer.HTTPPort}, ctl, reg, evbuf, hb)
	go func() {
		if err := httpSrv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// 7. Optional line-oriented input bridge.
	go func() {
		if !cfg.InputBridge.Enabled {
			log.Printf("[inputbridge] disabled")
			return
		}
		if err := inputbridge.Start(ctx, inputbridge.Config{Device: cfg.InputBridge.Device}, hb, evbuf); err != nil && ctx.Err() == nil {
			log.Printf("[inputbridge] stopped: %v", err)
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("fatal: %v", err)
	case <-ctx.Done():
	}

	for _, ep := range passthroughEndpoints {
		_ = ep.Close()
	}
	if err := state.Save(*statePath, reg.List()); err != nil {
		log.Printf("[main] final state save failed: %v", err)
	}
	log.Printf("[main] shutdown complete")
}

func passthroughListenAddr(basePort, address int) string {
	return fmt.Sprintf(":%d", basePort+address)
}
