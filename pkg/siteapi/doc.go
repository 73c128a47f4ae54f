// Package siteapi provides types, interfaces, and helpers for working with the
// astrology site backend API.
//
// # Overview
//
// The siteapi package defines the response Envelope, the error taxonomy, the
// domain views (Slide, BusinessInfo, ChatbotConfig, Booking, ContactMessage,
// Testimonial) and the Client interface. A concrete implementation is provided
// by the siteclient package, which normalizes configuration and wires the
// transport. Most consumers should import siteclient to construct a client and
// then call the operations exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "fmt"
//	  "log"
//
//	  "github.com/cosmic-astrology/siteapi/pkg/siteapi"
//	  "github.com/cosmic-astrology/siteapi/pkg/siteclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := siteclient.New(&siteapi.Config{BaseURL: "https://cosmicastrology.example"})
//	  if err != nil { log.Fatal(err) }
//
//	  env := cli.GetHeroSlides(ctx)
//	  if !env.OK() { log.Fatal(env.ErrorMessage()) }
//
//	  var slides siteapi.SlidesResponse
//	  if err := env.Decode(&slides); err != nil { log.Fatal(err) }
//	  fmt.Println(len(slides.Slides))
//	}
//
// # Envelopes and errors
//
// Every operation returns a non-nil *Envelope and never a Go error. On success
// the envelope carries the server body verbatim (Raw and Body). On failure Err
// holds an *OperationError whose Kind tells network, encode, parse, and
// HTTP-status failures apart; the JSON form of a failed envelope is
// {"success":false,"error":"..."}. A response with a non-2xx status and a
// valid JSON body is passed through like any other response; inspect
// StatusCode when the distinction matters.
//
// # Leads
//
// SubmitLead routes a Lead whose "source" equals SourceContactForm to the
// contact endpoint and everything else to the bookings endpoint. GetLeads
// fetches bookings and contact messages in parallel and returns them as one
// list, bookings first.
//
// # Interceptors
//
// InterceptorChain lets callers observe or decorate every request (headers,
// logging, metrics) without touching the operations themselves.
package siteapi
