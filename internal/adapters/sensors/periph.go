package sensors

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/safelabs/sentinel-node/internal/ports"
)

// PeriphConfig selects the hardware the drivers attach to.
type PeriphConfig struct {
	// I2CBus is a periph bus name; empty selects the first available.
	I2CBus string
	// ThermoAddr is the I2C address of the BME280.
	ThermoAddr uint16
	// ADCChannel is the ADS1115 channel the gas sensor feeds.
	ADCChannel int
	// MotionPin is the GPIO name of the PIR output, e.g. "GPIO27".
	MotionPin string
}

// PeriphDrivers owns the hardware handles behind the three driver
// ports. Close releases the I2C bus.
type PeriphDrivers struct {
	bus    i2c.BusCloser
	thermo *bmxx80.Dev
	gasPin ads1x15.PinADC
	pir    gpio.PinIO
}

// OpenPeriph initializes the host and attaches to the configured
// devices: a BME280 for the coupled temperature/humidity read, an
// ADS1115 channel for the gas sensor, and a GPIO pin for the PIR.
func OpenPeriph(cfg PeriphConfig) (*PeriphDrivers, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", cfg.I2CBus, err)
	}

	thermo, err := bmxx80.NewI2C(bus, cfg.ThermoAddr, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("attach bme280 at %#x: %w", cfg.ThermoAddr, err)
	}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("attach ads1115: %w", err)
	}
	gasPin, err := adc.PinForChannel(ads1x15.Channel(cfg.ADCChannel), 3300*physic.MilliVolt, 1*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("adc channel %d: %w", cfg.ADCChannel, err)
	}

	pir := gpioreg.ByName(cfg.MotionPin)
	if pir == nil {
		_ = bus.Close()
		return nil, fmt.Errorf("gpio pin %q not found", cfg.MotionPin)
	}
	if err := pir.In(gpio.PullDown, gpio.NoEdge); err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("configure pir pin %q: %w", cfg.MotionPin, err)
	}

	return &PeriphDrivers{
		bus:    bus,
		thermo: thermo,
		gasPin: gasPin,
		pir:    pir,
	}, nil
}

func (d *PeriphDrivers) Close() error {
	return d.bus.Close()
}

// Thermo returns the coupled temperature/humidity driver.
func (d *PeriphDrivers) Thermo() ports.ThermoHygrometer {
	return bmeThermo{dev: d.thermo}
}

// Gas returns the analog gas driver.
func (d *PeriphDrivers) Gas() ports.AnalogReader {
	return adcGas{pin: d.gasPin}
}

// Motion returns the PIR driver.
func (d *PeriphDrivers) Motion() ports.MotionDetector {
	return pirMotion{pin: d.pir}
}

type bmeThermo struct {
	dev *bmxx80.Dev
}

func (s bmeThermo) Sense(_ context.Context) (float64, float64, error) {
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		// One coupled read; both values fail together.
		return 0, 0, fmt.Errorf("bme280 sense: %w", err)
	}
	return env.Temperature.Celsius(), float64(env.Humidity) / float64(physic.PercentRH), nil
}

type adcGas struct {
	pin ads1x15.PinADC
}

func (g adcGas) ReadRaw(_ context.Context) int {
	sample, err := g.pin.Read()
	if err != nil {
		// The analog primitive is modeled as infallible; a bus fault
		// degrades to the low end of the domain.
		return 0
	}
	raw := int(sample.Raw)
	if raw < 0 {
		raw = 0
	}
	return raw
}

type pirMotion struct {
	pin gpio.PinIO
}

func (p pirMotion) Detect(_ context.Context) bool {
	return p.pin.Read() == gpio.High
}
