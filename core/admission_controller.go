// core/admission_controller.go
package core

import (
	"context"
	"time"

	"github.com/signalsfoundry/lodging-simulator/internal/logging"
	"github.com/signalsfoundry/lodging-simulator/internal/observability"
	"github.com/signalsfoundry/lodging-simulator/model"
)

// AdmissionController decides, request by request, whether a demand request
// becomes a confirmed reservation and at what nightly price. It is the only
// writer of the inventory calendar.
//
// Decisions are strictly greedy and sequential in generator order: an
// earlier request can consume the last room a later request wanted. That
// order sensitivity is the design, not an accident, and must not be
// "fixed" by reordering or batching.
type AdmissionController struct {
	inventory *InventoryCalendar
	pricing   *PricingEngine
	log       logging.Logger
	collector *observability.SimCollector // optional
}

// NewAdmissionController wires the controller. The collector may be nil.
func NewAdmissionController(inventory *InventoryCalendar, pricing *PricingEngine, log logging.Logger, collector *observability.SimCollector) *AdmissionController {
	if log == nil {
		log = logging.Noop()
	}
	return &AdmissionController{
		inventory: inventory,
		pricing:   pricing,
		log:       log,
		collector: collector,
	}
}

// Process evaluates one request against today's state:
//
//  1. no capacity on any night of the stay → rejected, no mutation;
//  2. quote the nightly price from the check-in date's occupancy and the
//     booking lead time;
//  3. quote above the guest's budget → rejected, no mutation;
//  4. otherwise build a confirmed reservation at the quoted price and
//     commit it into the inventory.
//
// Rejection is a normal outcome, recorded like any other result. Every
// request yields exactly one reservation record.
func (ac *AdmissionController) Process(ctx context.Context, req model.DemandRequest, today time.Time) model.Reservation {
	res := model.Reservation{
		ID:         "bk-" + req.ID,
		RequestID:  req.ID,
		RoomTypeID: req.RoomTypeID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		PartySize:  req.PartySize,
		CreatedOn:  DateOnly(today),
	}

	if !ac.inventory.CapacityAvailable(req.RoomTypeID, req.CheckIn, req.CheckOut) {
		res.Status = model.StatusRejected
		res.Reason = model.ReasonNoCapacity
		ac.log.Debug(ctx, "request rejected: no capacity",
			logging.String("request_id", req.ID),
			logging.String("room_type", req.RoomTypeID),
		)
		ac.recordOutcome(res)
		return res
	}

	roomType, _ := ac.inventory.catalog.Get(req.RoomTypeID)
	rate := ac.inventory.OccupancyRate(req.RoomTypeID, req.CheckIn)
	lead := int(DateOnly(req.CheckIn).Sub(DateOnly(today)).Hours() / 24)
	price := ac.pricing.Quote(roomType, req.CheckIn, rate, lead)

	if price > req.MaxBudget {
		res.Status = model.StatusRejected
		res.Reason = model.ReasonOverBudget
		ac.log.Debug(ctx, "request rejected: over budget",
			logging.String("request_id", req.ID),
			logging.Int("price", price),
			logging.Int("max_budget", req.MaxBudget),
		)
		ac.recordOutcome(res)
		return res
	}

	res.Status = model.StatusConfirmed
	res.NightlyPrice = price
	res.TotalPrice = price * res.Nights()
	ac.inventory.Commit(res)

	ac.log.Debug(ctx, "reservation confirmed",
		logging.String("reservation_id", res.ID),
		logging.String("room_type", res.RoomTypeID),
		logging.Int("nightly_price", res.NightlyPrice),
		logging.Int("nights", res.Nights()),
	)
	ac.recordOutcome(res)
	return res
}

func (ac *AdmissionController) recordOutcome(res model.Reservation) {
	if ac.collector == nil {
		return
	}
	ac.collector.ObserveAdmission(res.RoomTypeID, string(res.Status), res.Reason)
	if res.Status == model.StatusConfirmed {
		ac.collector.AddRevenue(res.TotalPrice)
	}
}
