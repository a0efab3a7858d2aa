//go:build !tinygo && !(linux && periph)

package hal

import "errors"

func NewPeriph(_ PeriphOptions) (HAL, error) {
	return nil, errors.New("periph board support requires linux and the periph build tag")
}
