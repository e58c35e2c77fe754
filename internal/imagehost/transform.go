package imagehost

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spec-kit/photoshare-service/internal/domain"
)

// TransformationSegments turns the requested filters into image-host URL segments, in
// the order circle, effect, resize, text, rotate. A filter that is switched on but
// lacks its required values is skipped.
func TransformationSegments(t domain.Transformation) []string {
	var segments []string

	if c := t.Circle; c.UseFilter && c.Height > 0 && c.Width > 0 {
		segments = append(segments,
			"c_thumb,g_face,h_"+strconv.Itoa(c.Height)+",w_"+strconv.Itoa(c.Width),
			"r_max",
		)
	}

	if e := t.Effect; e.UseFilter {
		effect := ""
		if e.ArtAudrey {
			effect = "art:audrey"
		}
		if e.ArtZorro {
			effect = "art:zorro"
		}
		if e.Blur {
			effect = "blur:300"
		}
		if e.Cartoonify {
			effect = "cartoonify"
		}
		if effect != "" {
			segments = append(segments, "e_"+effect)
		}
	}

	if r := t.Resize; r.UseFilter && r.Height > 0 && r.Width > 0 {
		crop := ""
		if r.Crop {
			crop = "crop"
		}
		if r.Fill {
			crop = "fill"
		}
		if crop != "" {
			segments = append(segments, "c_"+crop+",g_auto,h_"+strconv.Itoa(r.Height)+",w_"+strconv.Itoa(r.Width))
		}
	}

	if x := t.Text; x.UseFilter && x.FontSize > 0 && x.Text != "" {
		segments = append(segments,
			"co_rgb:FFFF00,l_text:Times_"+strconv.Itoa(x.FontSize)+"_bold:"+escapeText(x.Text),
			"fl_layer_apply,g_south,y_20",
		)
	}

	if r := t.Rotate; r.UseFilter && r.Width > 0 && r.Degree != 0 {
		segments = append(segments,
			"c_scale,w_"+strconv.Itoa(r.Width),
			"a_vflip",
			"a_"+strconv.Itoa(r.Degree),
		)
	}

	return segments
}

// TransformationURL builds the delivery URL of publicID with the requested filters.
// ok is false when no filter contributes to the chain.
func (s *Store) TransformationURL(publicID string, t domain.Transformation) (string, bool) {
	segments := TransformationSegments(t)
	if len(segments) == 0 {
		return "", false
	}
	return s.transformBase + "/image/upload/" + strings.Join(segments, "/") + "/" + publicID, true
}

// escapeText keeps overlay text inside one segment and one parameter; PathEscape
// encodes both '/' and ','.
func escapeText(text string) string {
	return url.PathEscape(text)
}
