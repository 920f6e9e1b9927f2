// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package indicators

import (
	"fmt"
	"image/color"
	"maycharts/indapi"
	"maycharts/indapi/indicators/bollinger"
	"maycharts/indapi/indicators/rsi"
	"maycharts/indapi/indicators/sma"
	"maycharts/indapi/indicators/stochastics"
	"sort"

	"golang.org/x/exp/maps"
)

const DefaultId = "sma"

var IndicatorRegistry map[indapi.IndicatorId]func() indapi.IndicatorData = make(map[indapi.IndicatorId]func() indapi.IndicatorData)

func init() {
	IndicatorRegistry[bollinger.Id] = bollinger.NewIndicator
	IndicatorRegistry[sma.Id] = sma.NewIndicator
	IndicatorRegistry[rsi.Id] = rsi.NewIndicator
	IndicatorRegistry[stochastics.Id] = stochastics.NewIndicator
}

func Create(id indapi.IndicatorId, properties map[string]string, colors []color.NRGBA) (indapi.IndicatorData, error) {
	d, ok := IndicatorRegistry[id]
	if !ok {
		return nil, fmt.Errorf("invalid indicator name %q", id)
	}
	ind := d()
	ind.SetProperties(properties)
	ind.SetColors(colors)
	return ind, nil
}

func GetDefaultProperties(id indapi.IndicatorId) map[string]string {
	d, ok := IndicatorRegistry[id]
	if !ok {
		return nil
	}
	return d().GetProperties()
}

func GetList() indapi.IndicatorList {
	l := indapi.IndicatorList(maps.Keys(IndicatorRegistry))
	sort.Sort(l)
	return l
}
