// Package siteclient provides the primary entry point for constructing a
// site API client that implements the siteapi.Client interface.
//
// It normalizes the base URL and layers the HTTP transport on top of the
// operations and types defined in the siteapi package. Applications build one
// client and pass it to whatever needs it; there is no package-level instance.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/cosmic-astrology/siteapi/pkg/siteapi"
//	  "github.com/cosmic-astrology/siteapi/pkg/siteclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := siteclient.NewWithEndpoint("https://cosmicastrology.example")
//	  if err != nil { log.Fatal(err) }
//
//	  env := cli.SubmitLead(ctx, siteapi.Lead{
//	    "name":    "Asha",
//	    "email":   "asha@example.com",
//	    "message": "Please call me back",
//	    "source":  siteapi.SourceContactForm,
//	  })
//	  if !env.OK() { log.Println(env.ErrorMessage()) }
//	}
//
// Admin calls
//
// VerifyAdmin stores the backend session cookie in the client's jar, so call
// it on the same client before GetLeads, CreateHeroSlide, CreateGallerySlide,
// or GetTestimonials.
package siteclient
